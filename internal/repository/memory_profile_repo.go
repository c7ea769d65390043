package repository

import (
	"context"
	"sync"

	"hospital-chat/internal/domain"
)

// MemoryProfileRepository guarda el perfil en memoria. Sirve para tests y
// como fallback cuando no hay storage durable configurado.
type MemoryProfileRepository struct {
	mu     sync.Mutex
	stored *domain.Profile
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{}
}

func (r *MemoryProfileRepository) Load(_ context.Context) (domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stored == nil {
		return domain.Profile{}, ErrProfileNotFound
	}
	return *r.stored, nil
}

func (r *MemoryProfileRepository) Save(_ context.Context, profile domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := profile
	r.stored = &copied
	return nil
}
