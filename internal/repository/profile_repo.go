package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hospital-chat/internal/domain"
)

// ErrProfileNotFound indica que no hay registro persistido todavia.
// Un registro ilegible se reporta igual: equivale a "no hay registro".
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository abstrae el storage durable del perfil de usuario.
type ProfileRepository interface {
	Load(ctx context.Context) (domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
}

// El perfil es un registro unico por instalacion; se fija la fila con esta
// clave para que Save siempre haga upsert sobre el mismo registro.
const profileRowKey = "current"

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) Load(ctx context.Context) (domain.Profile, error) {
	const query = `
		SELECT id, name, accent_background, accent_foreground, created_at, updated_at
		FROM user_profile
		WHERE row_key = $1
	`
	var profile domain.Profile
	err := r.pool.QueryRow(ctx, query, profileRowKey).Scan(
		&profile.ID,
		&profile.Name,
		&profile.Accent.Background,
		&profile.Accent.Foreground,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, ErrProfileNotFound
	}
	return profile, err
}

func (r *PgProfileRepository) Save(ctx context.Context, profile domain.Profile) error {
	const query = `
		INSERT INTO user_profile (row_key, id, name, accent_background, accent_foreground, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (row_key)
		DO UPDATE SET
			name = EXCLUDED.name,
			accent_background = EXCLUDED.accent_background,
			accent_foreground = EXCLUDED.accent_foreground,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		profileRowKey,
		profile.ID,
		profile.Name,
		profile.Accent.Background,
		profile.Accent.Foreground,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}
