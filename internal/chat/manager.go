package chat

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"hospital-chat/internal/notify"
	"hospital-chat/internal/query"
)

var ErrSessionNotFound = errors.New("session not found")

type sessionEntry struct {
	session *Session
	alerts  *notify.Buffer
}

// Manager registra las sesiones activas para la capa HTTP. Cada sesion recibe
// su propio buffer de alertas ademas del notifier base.
type Manager struct {
	client   query.Client
	profiles ProfileSource
	notifier notify.Notifier
	logger   *zap.Logger

	mu      sync.RWMutex
	entries map[string]*sessionEntry
}

func NewManager(client query.Client, profiles ProfileSource, notifier notify.Notifier, logger *zap.Logger) *Manager {
	if notifier == nil {
		notifier = notify.NewDisabledNotifier()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		client:   client,
		profiles: profiles,
		notifier: notifier,
		logger:   logger,
		entries:  make(map[string]*sessionEntry),
	}
}

// Create abre una conversacion nueva y la deja direccionable por id.
func (m *Manager) Create() *Session {
	alerts := notify.NewBuffer()
	session := NewSession(m.client, m.profiles, notify.NewMulti(m.notifier, alerts), m.logger)

	m.mu.Lock()
	m.entries[session.ID] = &sessionEntry{session: session, alerts: alerts}
	m.mu.Unlock()

	m.logger.Info("session created", zap.String("session_id", session.ID))
	return session
}

// Get devuelve la sesion registrada con ese id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry.session, nil
}

// Alerts drena las alertas acumuladas de la sesion.
func (m *Manager) Alerts(id string) ([]notify.Alert, error) {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry.alerts.Drain(), nil
}

// Close descarta la sesion y la saca del registro.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	entry, ok := m.entries[id]
	if ok {
		delete(m.entries, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	entry.session.Close()
	m.logger.Info("session closed", zap.String("session_id", id))
	return nil
}
