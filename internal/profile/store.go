package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospital-chat/internal/domain"
	"hospital-chat/internal/repository"
)

// State es el ciclo de vida del store: los lectores que llegan antes de
// ready ven el registro default.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
)

// ErrPersistFailed marca que el cambio aplico en memoria pero puede no
// sobrevivir un reinicio.
var ErrPersistFailed = errors.New("profile persist failed")

// Store es el contenedor del perfil de usuario: una sola instancia por
// proceso, con escrituras serializadas sobre el mismo registro.
type Store struct {
	logger *zap.Logger
	repo   repository.ProfileRepository

	// writeMu serializa las escrituras al storage; mu solo cubre el snapshot
	// en memoria, asi los lectores nunca bloquean sobre I/O.
	writeMu sync.Mutex
	mu      sync.Mutex
	current domain.Profile
	state   State
}

func NewStore(logger *zap.Logger, repo repository.ProfileRepository) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger:  logger,
		repo:    repo,
		current: defaultProfile(),
		state:   StateUninitialized,
	}
}

func defaultProfile() domain.Profile {
	now := time.Now().UTC()
	return domain.Profile{
		ID:        uuid.NewString(),
		Name:      domain.DefaultProfileName,
		Accent:    domain.DefaultAccent(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Load lee el registro persistido. Nunca es fatal: si el storage falla o el
// registro es ilegible se conserva el default y se loguea. En el primer
// arranque se persiste el default para que el id quede fijo para siempre.
func (s *Store) Load(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.state = StateLoading
	fallback := s.current
	s.mu.Unlock()

	stored, err := s.repo.Load(ctx)
	loaded := false
	switch {
	case err == nil:
		loaded = true
	case errors.Is(err, repository.ErrProfileNotFound):
		if saveErr := s.repo.Save(ctx, fallback); saveErr != nil {
			s.logger.Warn("profile: could not persist initial record", zap.Error(saveErr))
		}
	default:
		s.logger.Warn("profile: load failed, keeping defaults", zap.Error(err))
	}

	s.mu.Lock()
	if loaded {
		s.current = stored
	}
	s.state = StateReady
	s.mu.Unlock()
}

// UpdateInput son los campos opcionales a fusionar sobre el registro actual.
// El avatar no se recibe: siempre se deriva de (Name, Accent).
type UpdateInput struct {
	Name   *string
	Accent *domain.Accent
}

// Update fusiona los campos dados y persiste el registro completo antes de
// devolver. Si la persistencia falla, el cambio en memoria queda aplicado
// para este proceso y el error se devuelve para que la UI avise.
func (s *Store) Update(ctx context.Context, in UpdateInput) (domain.Profile, error) {
	// Bajo writeMu un segundo Update recien se aplica cuando el primero
	// termino de persistir: no hay lost-update sobre el mismo registro.
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	next := s.current
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			next.Name = name
		}
	}
	if in.Accent != nil {
		next.Accent = *in.Accent
	}
	next.UpdatedAt = time.Now().UTC()
	s.current = next
	s.mu.Unlock()

	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Warn("profile: persist failed", zap.Error(err))
		return next, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return next, nil
}

// Profile devuelve el snapshot actual.
func (s *Store) Profile() domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// State devuelve el estado del ciclo de vida.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
