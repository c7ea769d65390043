package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Alert es el detalle estructurado de una falla asincrona de entrega.
type Alert struct {
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier recibe alertas fire-and-forget para que la UI las muestre.
type Notifier interface {
	Notify(alert Alert)
}

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier registra cada alerta en el log estructurado.
func NewLogNotifier(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(alert Alert) {
	n.logger.Warn("delivery alert",
		zap.String("kind", alert.Kind),
		zap.String("message", alert.Message),
		zap.Time("at", alert.At),
	)
}

type disabledNotifier struct{}

// NewDisabledNotifier descarta alertas cuando no hay UI conectada.
func NewDisabledNotifier() Notifier {
	return &disabledNotifier{}
}

func (n *disabledNotifier) Notify(Alert) {}

// Buffer acumula alertas para que un cliente las consuma por polling.
type Buffer struct {
	mu     sync.Mutex
	alerts []Alert
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Notify(alert Alert) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alerts = append(b.alerts, alert)
}

// Drain devuelve las alertas acumuladas y vacia el buffer.
func (b *Buffer) Drain() []Alert {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.alerts
	b.alerts = nil
	if out == nil {
		out = []Alert{}
	}
	return out
}

type multiNotifier struct {
	targets []Notifier
}

// NewMulti reparte cada alerta a varios notifiers.
func NewMulti(targets ...Notifier) Notifier {
	return &multiNotifier{targets: targets}
}

func (n *multiNotifier) Notify(alert Alert) {
	for _, t := range n.targets {
		if t != nil {
			t.Notify(alert)
		}
	}
}
