package notify

import (
	"sync"

	"go.uber.org/zap"
)

// LogSink writes every toast to the service log.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(t Toast) error {
	fields := []zap.Field{
		zap.String("toast_id", t.ID),
		zap.String("title", t.Title),
		zap.String("description", t.Description),
	}
	if t.Variant == VariantDestructive {
		s.logger.Warn("toast", fields...)
	} else {
		s.logger.Info("toast", fields...)
	}
	return nil
}

// Ring keeps the most recent toasts for the notifications endpoint.
type Ring struct {
	mu    sync.RWMutex
	items []Toast
	size  int
}

func NewRing(size int) *Ring {
	if size <= 0 {
		size = 50
	}
	return &Ring{size: size}
}

func (r *Ring) Deliver(t Toast) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, t)
	if len(r.items) > r.size {
		r.items = append([]Toast(nil), r.items[len(r.items)-r.size:]...)
	}
	return nil
}

// Notify lets a Ring act as a synchronous Notifier in tests.
func (r *Ring) Notify(t Toast) {
	if t.Variant == "" {
		t.Variant = VariantDefault
	}
	_ = r.Deliver(t)
}

// Recent returns toasts newest first.
func (r *Ring) Recent() []Toast {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Toast, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		out = append(out, r.items[i])
	}
	return out
}

// Count returns how many retained toasts have the given variant.
func (r *Ring) Count(v Variant) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, t := range r.items {
		if t.Variant == v {
			n++
		}
	}
	return n
}
