// Package collection keeps an in-memory snapshot of one entity type in sync
// with the gateway: it refetches after every successful mutation and after
// every change event on the tables it watches.
package collection

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/notify"
	"github.com/BruksfildServices01/salon-manager/internal/realtime"
)

// Loader reads the full collection from the gateway.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Subscriber opens change subscriptions. gateway.Gateway satisfies it.
type Subscriber interface {
	Subscribe(ctx context.Context, tables ...string) (realtime.Subscription, error)
}

// Action names the toasts shown for a mutation.
type Action struct {
	Success string
	Failure string
}

type Options struct {
	Name     string
	Tables   []string
	Notifier notify.Notifier
	Logger   *zap.Logger
}

type Collection[T any] struct {
	name     string
	tables   []string
	sub      Subscriber
	load     Loader[T]
	notifier notify.Notifier
	logger   *zap.Logger

	mu        sync.RWMutex
	items     []T
	inflight  int
	lastErr   error
	issued    uint64
	applied   uint64
	closed    bool
	listeners []func([]T)

	startOnce sync.Once
	startErr  error
	cancel    context.CancelFunc
	stream    realtime.Subscription
	done      chan struct{}
}

func New[T any](sub Subscriber, load Loader[T], opts Options) *Collection[T] {
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Collection[T]{
		name:     opts.Name,
		tables:   opts.Tables,
		sub:      sub,
		load:     load,
		notifier: opts.Notifier,
		logger:   opts.Logger.With(zap.String("collection", opts.Name)),
		items:    []T{},
	}
}

// ==================================================
// Lifecycle
// ==================================================

// Start subscribes to the watched tables and performs the first fetch. Only
// the first call does anything; later calls return its error.
func (c *Collection[T]) Start(ctx context.Context) error {
	c.startOnce.Do(func() {
		runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

		stream, err := c.sub.Subscribe(runCtx, c.tables...)
		if err != nil {
			cancel()
			c.startErr = fmt.Errorf("collection %s: subscribe: %w", c.name, err)
			return
		}

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			cancel()
			_ = stream.Close()
			return
		}
		c.cancel = cancel
		c.stream = stream
		c.done = make(chan struct{})
		c.mu.Unlock()

		go c.watch(runCtx, stream)
		c.Fetch(ctx)
	})
	return c.startErr
}

// watch refetches on every event. The payload is not inspected.
func (c *Collection[T]) watch(ctx context.Context, stream realtime.Subscription) {
	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-stream.Events():
			if !ok {
				return
			}
			c.logger.Debug("change event",
				zap.String("table", ev.Table),
				zap.String("type", string(ev.Type)),
			)
			c.Fetch(ctx)
		}
	}
}

// Close tears down the subscription. Fetches completing afterwards are
// discarded.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	cancel, stream, done := c.cancel, c.stream, c.done
	c.listeners = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if stream != nil {
		if err := stream.Close(); err != nil {
			c.logger.Warn("closing subscription", zap.Error(err))
		}
	}
	if done != nil {
		<-done
	}
}

// ==================================================
// Reads
// ==================================================

// Fetch reloads the collection and returns the current snapshot. It never
// fails: on error the previous snapshot stays in place, the error is kept in
// LastError and a destructive toast is sent. When fetches overlap, only the
// most recently issued result that completes is applied; an older result
// finishing later is dropped, and so is its error.
func (c *Collection[T]) Fetch(ctx context.Context) []T {
	c.mu.Lock()
	if c.closed {
		items := c.items
		c.mu.Unlock()
		return slices.Clone(items)
	}
	c.issued++
	seq := c.issued
	c.inflight++
	c.mu.Unlock()

	items, err := c.load(ctx)

	c.mu.Lock()
	c.inflight--
	if c.closed {
		snapshot := c.items
		c.mu.Unlock()
		return slices.Clone(snapshot)
	}

	if err != nil {
		snapshot := c.items
		if seq <= c.applied {
			// a newer fetch already landed, the snapshot is current
			c.mu.Unlock()
			c.logger.Debug("discarding stale fetch error", zap.Uint64("seq", seq), zap.Error(err))
			return slices.Clone(snapshot)
		}
		c.lastErr = err
		c.mu.Unlock()

		c.logger.Warn("fetch failed", zap.Uint64("seq", seq), zap.Error(err))
		c.notifier.Notify(notify.Failure("Erro ao carregar "+c.name, err))
		return slices.Clone(snapshot)
	}

	var listeners []func([]T)
	if seq > c.applied {
		if items == nil {
			items = []T{}
		}
		c.items = items
		c.applied = seq
		c.lastErr = nil
		listeners = slices.Clone(c.listeners)
	} else {
		c.logger.Debug("discarding stale fetch", zap.Uint64("seq", seq), zap.Uint64("applied", c.applied))
	}
	snapshot := c.items
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(slices.Clone(snapshot))
	}
	return slices.Clone(snapshot)
}

// Items returns a copy of the current snapshot.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Find returns the first item matching fn.
func (c *Collection[T]) Find(fn func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if fn(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

// LastError is the error of the latest failed fetch, cleared by the next
// applied one.
func (c *Collection[T]) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// OnChange registers fn to run after each applied snapshot.
func (c *Collection[T]) OnChange(fn func([]T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.listeners = append(c.listeners, fn)
	}
}

func (c *Collection[T]) Name() string { return c.name }

// ==================================================
// Writes
// ==================================================

// Mutate runs fn, the write sequence of one logical operation. A failure is
// notified and returned without refetching; success is notified and followed
// by a refetch.
func (c *Collection[T]) Mutate(ctx context.Context, action Action, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		c.logger.Warn("mutation failed", zap.String("action", action.Failure), zap.Error(err))
		c.notifier.Notify(notify.Failure(action.Failure, err))
		return err
	}

	if action.Success != "" {
		c.notifier.Notify(notify.Success(action.Success, ""))
	}
	c.Fetch(ctx)
	return nil
}
