// Package gatewaytest wraps a gateway to record calls and inject failures.
package gatewaytest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/realtime"
)

var ErrInjected = errors.New("gatewaytest: injected failure")

// Call is one recorded operation, e.g. {"delete", "professional_history"}.
type Call struct {
	Op    string
	Table string
}

func (c Call) String() string { return c.Op + " " + c.Table }

// Hook runs before the wrapped call; a non-nil error fails the call.
type Hook func(ctx context.Context, call Call) error

type Recorder struct {
	gateway.Gateway

	mu    sync.Mutex
	calls []Call
	hooks []Hook
}

func Wrap(g gateway.Gateway) *Recorder {
	return &Recorder{Gateway: g}
}

// FailOn makes the nth (1-based) matching call fail with ErrInjected. n <= 0
// fails every matching call.
func (r *Recorder) FailOn(op, table string, n int) {
	var (
		mu   sync.Mutex
		seen int
	)
	r.OnCall(func(_ context.Context, c Call) error {
		if c.Op != op || c.Table != table {
			return nil
		}
		mu.Lock()
		defer mu.Unlock()
		seen++
		if n <= 0 || seen == n {
			return fmt.Errorf("%s: %w", c, ErrInjected)
		}
		return nil
	})
}

func (r *Recorder) OnCall(h Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, h)
}

func (r *Recorder) ClearHooks() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = nil
}

func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Writes returns the recorded non-select calls in order.
func (r *Recorder) Writes() []string {
	var out []string
	for _, c := range r.Calls() {
		if c.Op != "select" {
			out = append(out, c.String())
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) before(ctx context.Context, op, table string) error {
	c := Call{Op: op, Table: table}

	r.mu.Lock()
	r.calls = append(r.calls, c)
	hooks := append([]Hook(nil), r.hooks...)
	r.mu.Unlock()

	for _, h := range hooks {
		if err := h(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) Select(ctx context.Context, table string, q gateway.Query) ([]gateway.Row, error) {
	if err := r.before(ctx, "select", table); err != nil {
		return nil, err
	}
	return r.Gateway.Select(ctx, table, q)
}

func (r *Recorder) Insert(ctx context.Context, table string, row gateway.Row) (gateway.Row, error) {
	if err := r.before(ctx, "insert", table); err != nil {
		return nil, err
	}
	return r.Gateway.Insert(ctx, table, row)
}

func (r *Recorder) Update(ctx context.Context, table, id string, patch gateway.Row) error {
	if err := r.before(ctx, "update", table); err != nil {
		return err
	}
	return r.Gateway.Update(ctx, table, id, patch)
}

func (r *Recorder) Delete(ctx context.Context, table string, filters ...gateway.Filter) error {
	if err := r.before(ctx, "delete", table); err != nil {
		return err
	}
	return r.Gateway.Delete(ctx, table, filters...)
}

func (r *Recorder) Subscribe(ctx context.Context, tables ...string) (realtime.Subscription, error) {
	return r.Gateway.Subscribe(ctx, tables...)
}
