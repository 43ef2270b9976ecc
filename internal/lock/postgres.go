package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Postgres takes session advisory locks so instances sharing the database
// share the lock without Redis. Each held lock pins one pooled connection;
// waiting is bounded by Wait so an exhausted pool answers ErrBusy.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	Wait   time.Duration
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) *Postgres {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Postgres{pool: pool, logger: logger, Wait: defaultWait}
}

func (p *Postgres) Acquire(ctx context.Context, key string) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, p.Wait)
	defer cancel()

	conn, err := p.pool.Acquire(waitCtx)
	if err != nil {
		return nil, p.waitErr(ctx, key, err)
	}
	if _, err := conn.Exec(waitCtx, "SELECT pg_advisory_lock(hashtext($1))", key); err != nil {
		conn.Release()
		return nil, p.waitErr(ctx, key, err)
	}

	return func() {
		if _, err := conn.Exec(context.Background(), "SELECT pg_advisory_unlock(hashtext($1))", key); err != nil {
			p.logger.Warn("failed to release lock", zap.String("key", key), zap.Error(err))
			// a session still holding the lock must not go back to the pool
			_ = conn.Conn().Close(context.Background())
		}
		conn.Release()
	}, nil
}

func (p *Postgres) waitErr(ctx context.Context, key string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrBusy
	}
	return fmt.Errorf("lock %s: %w", key, err)
}
