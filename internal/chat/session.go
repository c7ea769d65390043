package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"hospital-chat/internal/domain"
	"hospital-chat/internal/notify"
	"hospital-chat/internal/query"
)

// greetingText abre cada conversacion nueva.
const greetingText = "Hello! Ask me anything about the hospital's departments, staff, and facilities."

// apologyText reemplaza la respuesta cuando la entrega falla. El error crudo
// nunca llega a la burbuja del asistente.
const apologyText = "I'm sorry, I couldn't get an answer right now. Please try again."

var (
	ErrEmptyMessage  = errors.New("message text is empty")
	ErrSessionClosed = errors.New("session closed")
)

// ProfileSource entrega el snapshot actual del perfil para atribuir mensajes.
type ProfileSource interface {
	Profile() domain.Profile
}

// Session es el controlador de una conversacion: duenio exclusivo del log,
// del flag "el asistente esta respondiendo" y del despacho al servicio remoto.
// Una instancia equivale a una conversacion; no se comparte entre sesiones.
type Session struct {
	ID        string
	CreatedAt time.Time

	client   query.Client
	profiles ProfileSource
	notifier notify.Notifier
	logger   *zap.Logger

	wg conc.WaitGroup

	mu       sync.Mutex
	log      []domain.Message
	inflight int
	closed   bool
}

// NewSession crea el controlador y agrega el saludo inicial del asistente.
func NewSession(client query.Client, profiles ProfileSource, notifier notify.Notifier, logger *zap.Logger) *Session {
	if notifier == nil {
		notifier = notify.NewDisabledNotifier()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		client:    client,
		profiles:  profiles,
		notifier:  notifier,
		logger:    logger,
	}
	s.log = append(s.log, domain.Message{
		ID:        uuid.NewString(),
		Text:      greetingText,
		Author:    domain.AssistantAuthor(),
		CreatedAt: now,
	})
	return s
}

// Submit valida el texto, agrega el mensaje del usuario en estado pending y
// despacha exactamente una consulta remota. La fase sincrona nunca bloquea:
// la respuesta (o la disculpa sintetizada) se agrega al log cuando resuelve.
func (s *Session) Submit(text string) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, ErrEmptyMessage
	}

	p := s.profiles.Profile()
	msg := domain.Message{
		ID:   uuid.NewString(),
		Text: text,
		Author: domain.Author{
			Role:   domain.RoleUser,
			Name:   p.Name,
			Avatar: p.AvatarURL(),
		},
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.Message{}, ErrSessionClosed
	}
	s.log = append(s.log, msg)
	s.inflight++
	s.mu.Unlock()

	s.wg.Go(func() {
		s.resolve(msg.ID, text)
	})

	return msg, nil
}

// resolve corre en su propia goroutine. Usa context.Background porque una
// entrega en curso no se cancela: corre hasta resolver y, si la sesion ya
// fue cerrada, el resultado se descarta.
func (s *Session) resolve(userMessageID, text string) {
	answer, err := s.client.Ask(context.Background(), text)
	if err != nil {
		s.completeFailure(userMessageID, err)
		return
	}
	s.completeSuccess(userMessageID, answer)
}

func (s *Session) completeSuccess(userMessageID, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.closed {
		return
	}
	s.transition(userMessageID, domain.StatusDelivered)
	s.log = append(s.log, domain.Message{
		ID:        uuid.NewString(),
		Text:      answer,
		Author:    domain.AssistantAuthor(),
		CreatedAt: time.Now().UTC(),
	})
}

func (s *Session) completeFailure(userMessageID string, err error) {
	qerr := query.AsError(err)

	s.mu.Lock()
	s.inflight--
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.transition(userMessageID, domain.StatusFailed)
	s.log = append(s.log, domain.Message{
		ID:        uuid.NewString(),
		Text:      apologyText,
		Author:    domain.AssistantAuthor(),
		CreatedAt: time.Now().UTC(),
	})
	s.mu.Unlock()

	s.logger.Warn("delivery failed",
		zap.String("session_id", s.ID),
		zap.String("kind", string(qerr.Kind)),
		zap.Error(err),
	)
	s.notifier.Notify(notify.Alert{
		Kind:    string(qerr.Kind),
		Message: qerr.Message,
		At:      time.Now().UTC(),
	})
}

// transition aplica la unica mutacion permitida sobre un mensaje ya agregado.
func (s *Session) transition(id string, status domain.MessageStatus) {
	for i := range s.log {
		if s.log[i].ID == id {
			if s.log[i].Status == domain.StatusPending {
				s.log[i].Status = status
			}
			return
		}
	}
}

// Messages devuelve una copia del log en orden de insercion.
func (s *Session) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.log))
	copy(out, s.log)
	return out
}

// Composing indica si hay al menos un despacho remoto pendiente.
func (s *Session) Composing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Close marca la sesion como descartada. Los despachos en curso corren hasta
// resolver pero su resultado ya no toca el log.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Wait bloquea hasta que no queden despachos pendientes.
func (s *Session) Wait() {
	s.wg.Wait()
}
