package notify

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Toast is a user-facing, fire-and-forget notification.
type Toast struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	CreatedAt   time.Time `json:"created_at"`
}

type Notifier interface {
	Notify(t Toast)
}

// Sink receives toasts on the dispatcher's worker goroutine.
type Sink interface {
	Deliver(t Toast) error
}

type Dispatcher struct {
	sinks  []Sink
	logger *zap.Logger
	queue  chan Toast
	done   chan struct{}
}

func NewDispatcher(logger *zap.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks:  sinks,
		logger: logger,
		queue:  make(chan Toast, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for t := range d.queue {
		for _, s := range d.sinks {
			if err := s.Deliver(t); err != nil {
				d.logger.Warn("toast delivery failed", zap.String("title", t.Title), zap.Error(err))
			}
		}
	}
}

// Notify never blocks: when the queue is full the toast is dropped.
func (d *Dispatcher) Notify(t Toast) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Variant == "" {
		t.Variant = VariantDefault
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	select {
	case d.queue <- t:
	default:
		d.logger.Warn("toast queue full, dropping", zap.String("title", t.Title))
	}
}

// Close drains the queue and stops the worker. Notify must not be called
// afterwards.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

func Success(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: VariantDefault}
}

func Failure(title string, err error) Toast {
	return Toast{Title: title, Description: err.Error(), Variant: VariantDestructive}
}

// Nop discards everything.
type Nop struct{}

func (Nop) Notify(Toast) {}
