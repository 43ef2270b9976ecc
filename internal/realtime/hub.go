package realtime

import (
	"context"
	"sync"
)

// hub fans events out to in-process subscribers. Remote feeds decode what
// they receive and hand it to a hub.
type hub struct {
	mu     sync.RWMutex
	subs   map[*subscription]struct{}
	closed bool
}

func newHub() *hub {
	return &hub{subs: make(map[*subscription]struct{})}
}

func (h *hub) subscribe(tables []string) (*subscription, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}

	s := &subscription{
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan ChangeEvent, bufferSize),
		hub:    h,
	}
	for _, t := range tables {
		s.tables[t] = struct{}{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(s.ch)
		return s, nil
	}
	h.subs[s] = struct{}{}
	return s, nil
}

func (h *hub) deliver(ev ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs {
		if _, ok := s.tables[ev.Table]; !ok {
			continue
		}
		// A full buffer already holds events that will each trigger a refetch,
		// so dropping this one loses no state.
		select {
		case s.ch <- ev:
		default:
		}
	}
}

// resync sends one EventResync per table any subscriber watches.
func (h *hub) resync() {
	h.mu.RLock()
	tables := make(map[string]struct{})
	for s := range h.subs {
		for t := range s.tables {
			tables[t] = struct{}{}
		}
	}
	h.mu.RUnlock()

	for t := range tables {
		h.deliver(ChangeEvent{Type: EventResync, Table: t})
	}
}

func (h *hub) remove(s *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.ch)
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for s := range h.subs {
		close(s.ch)
	}
	h.subs = map[*subscription]struct{}{}
}

type subscription struct {
	tables map[string]struct{}
	ch     chan ChangeEvent
	hub    *hub
	once   sync.Once
}

func (s *subscription) Events() <-chan ChangeEvent { return s.ch }

func (s *subscription) Close() error {
	s.once.Do(func() { s.hub.remove(s) })
	return nil
}

// LocalFeed keeps everything in-process. It backs the memory gateway and
// single-instance deployments.
type LocalFeed struct {
	hub *hub
}

func NewLocalFeed() *LocalFeed {
	return &LocalFeed{hub: newHub()}
}

func (f *LocalFeed) Publish(_ context.Context, ev ChangeEvent) error {
	f.hub.deliver(ev)
	return nil
}

func (f *LocalFeed) Subscribe(_ context.Context, tables ...string) (Subscription, error) {
	return f.hub.subscribe(tables)
}

func (f *LocalFeed) Close() error {
	f.hub.close()
	return nil
}
