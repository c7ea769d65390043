package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hospital-chat/internal/domain"
)

// profileRecord es el formato serializado en el key/value store. Se guarda
// (name, accent), nunca el avatar derivado.
type profileRecord struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	AccentBackground string    `json:"accent_background"`
	AccentForeground string    `json:"accent_foreground"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// redisKV es el subconjunto de comandos que usa el repositorio.
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type RedisProfileRepository struct {
	client redisKV
	key    string
}

func NewRedisProfileRepository(client *redis.Client) *RedisProfileRepository {
	return &RedisProfileRepository{
		client: client,
		key:    "profile:" + profileRowKey,
	}
}

func (r *RedisProfileRepository) Load(ctx context.Context) (domain.Profile, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Profile{}, ErrProfileNotFound
		}
		return domain.Profile{}, fmt.Errorf("get profile %s: %w", r.key, err)
	}

	var rec profileRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		// Registro corrupto: se trata como ausente.
		return domain.Profile{}, fmt.Errorf("%w: unmarshal profile: %v", ErrProfileNotFound, err)
	}

	return domain.Profile{
		ID:   rec.ID,
		Name: rec.Name,
		Accent: domain.Accent{
			Background: rec.AccentBackground,
			Foreground: rec.AccentForeground,
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func (r *RedisProfileRepository) Save(ctx context.Context, profile domain.Profile) error {
	rec := profileRecord{
		ID:               profile.ID,
		Name:             profile.Name,
		AccentBackground: profile.Accent.Background,
		AccentForeground: profile.Accent.Foreground,
		CreatedAt:        profile.CreatedAt,
		UpdatedAt:        profile.UpdatedAt,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := r.client.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("set profile %s: %w", r.key, err)
	}
	return nil
}
