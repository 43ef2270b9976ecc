// Package saga runs multi-step gateway writes that have no backend
// transaction. Each completed step may register a compensation; when a later
// step fails the compensations run in reverse order before the error is
// returned.
package saga

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrAborted = errors.New("saga: aborted")

type Func func(ctx context.Context) error

type step struct {
	name string
	undo Func
}

type Saga struct {
	name    string
	logger  *zap.Logger
	done    []step
	aborted bool
}

func New(name string, logger *zap.Logger) *Saga {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Saga{name: name, logger: logger}
}

// Do runs one step. undo may be nil when the step needs no compensation.
// On failure every completed step is compensated, newest first, and the
// returned error joins the step error with any compensation errors.
func (s *Saga) Do(ctx context.Context, name string, do, undo Func) error {
	if s.aborted {
		return fmt.Errorf("%s: %s: %w", s.name, name, ErrAborted)
	}

	if err := do(ctx); err != nil {
		s.aborted = true
		stepErr := fmt.Errorf("%s: %s: %w", s.name, name, err)
		if cerr := s.compensate(ctx); cerr != nil {
			return errors.Join(stepErr, cerr)
		}
		return stepErr
	}

	s.done = append(s.done, step{name: name, undo: undo})
	return nil
}

// Completed lists the steps that succeeded, in order.
func (s *Saga) Completed() []string {
	out := make([]string, 0, len(s.done))
	for _, st := range s.done {
		out = append(out, st.name)
	}
	return out
}

func (s *Saga) compensate(ctx context.Context) error {
	// compensations must run even when the caller's context is gone
	ctx = context.WithoutCancel(ctx)

	var errs []error
	for i := len(s.done) - 1; i >= 0; i-- {
		st := s.done[i]
		if st.undo == nil {
			continue
		}
		if err := st.undo(ctx); err != nil {
			s.logger.Error("compensation failed",
				zap.String("saga", s.name),
				zap.String("step", st.name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: undo %s: %w", s.name, st.name, err))
			continue
		}
		s.logger.Info("step compensated", zap.String("saga", s.name), zap.String("step", st.name))
	}
	s.done = nil
	return errors.Join(errs...)
}
