package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital-chat/internal/domain"
)

func TestMemoryProfileRepository_EmptyLoad(t *testing.T) {
	repo := NewMemoryProfileRepository()
	if _, err := repo.Load(context.Background()); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestMemoryProfileRepository_RoundTrip(t *testing.T) {
	repo := NewMemoryProfileRepository()
	now := time.Now().UTC()
	p := domain.Profile{
		ID:        "p1",
		Name:      "Ada",
		Accent:    domain.DefaultAccent(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Save(context.Background(), p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != p.ID || got.Name != p.Name || got.Accent != p.Accent {
		t.Fatalf("expected stored profile back, got %+v", got)
	}

	// Mutar el valor devuelto no debe tocar lo guardado.
	got.Name = "Grace"
	again, _ := repo.Load(context.Background())
	if again.Name != "Ada" {
		t.Fatalf("stored record mutated through returned copy")
	}
}
