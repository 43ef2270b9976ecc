package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	pgChannel = "realtime"
	// NOTIFY payloads must stay under 8000 bytes
	pgMaxPayload = 7900

	pgMinBackoff = 250 * time.Millisecond
	pgMaxBackoff = 30 * time.Second
)

// listener is one LISTEN session. Wait blocks for the next payload.
type listener interface {
	Wait(ctx context.Context) (string, error)
	Close()
}

type dialFunc func(ctx context.Context) (listener, error)

// PGFeed uses Postgres LISTEN/NOTIFY on the same database the gateway writes
// to, holding one pooled connection for the listener. A lost connection is
// re-established with backoff, after which every subscribed table receives
// an EventResync.
type PGFeed struct {
	pool   *pgxpool.Pool
	hub    *hub
	logger *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}

	dial       dialFunc
	minBackoff time.Duration
	maxBackoff time.Duration
}

// OpenPool connects a small pgx pool. maxConns <= 0 uses 4.
func OpenPool(ctx context.Context, databaseURL string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	if maxConns <= 0 {
		maxConns = 4
	}
	cfg.MaxConns = maxConns
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func NewPGFeed(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) (*PGFeed, error) {
	dial := func(ctx context.Context) (listener, error) { return listen(ctx, pool) }
	f, err := newPGFeed(ctx, dial, logger)
	if err != nil {
		return nil, err
	}
	f.pool = pool
	return f, nil
}

func newPGFeed(ctx context.Context, dial dialFunc, logger *zap.Logger) (*PGFeed, error) {
	ln, err := dial(ctx)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	f := &PGFeed{
		hub:        newHub(),
		logger:     logger,
		cancel:     cancel,
		done:       make(chan struct{}),
		dial:       dial,
		minBackoff: pgMinBackoff,
		maxBackoff: pgMaxBackoff,
	}
	go f.run(runCtx, ln)
	return f, nil
}

func (f *PGFeed) run(ctx context.Context, ln listener) {
	defer close(f.done)
	for {
		payload, err := ln.Wait(ctx)
		if err != nil {
			ln.Close()
			if ctx.Err() != nil {
				return
			}
			f.logger.Warn("postgres listener lost, reconnecting", zap.Error(err))

			if ln = f.reconnect(ctx); ln == nil {
				return
			}
			f.logger.Info("postgres listener reconnected")
			f.hub.resync()
			continue
		}

		ev, err := decode([]byte(payload))
		if err != nil {
			f.logger.Warn("discarding malformed change event", zap.Error(err))
			continue
		}
		f.hub.deliver(ev)
	}
}

// reconnect dials until it succeeds or ctx ends, doubling the wait each
// failure. It returns nil once ctx is done.
func (f *PGFeed) reconnect(ctx context.Context) listener {
	backoff := f.minBackoff
	for {
		t := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}

		ln, err := f.dial(ctx)
		if err == nil {
			return ln
		}
		if ctx.Err() != nil {
			return nil
		}
		f.logger.Warn("postgres listener reconnect failed",
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		backoff = min(backoff*2, f.maxBackoff)
	}
}

func (f *PGFeed) Publish(ctx context.Context, ev ChangeEvent) error {
	b, err := encode(ev)
	if err != nil {
		return err
	}
	if len(b) > pgMaxPayload {
		// listeners refetch regardless of payload
		ev.Payload = nil
		if b, err = encode(ev); err != nil {
			return err
		}
	}
	if _, err := f.pool.Exec(ctx, "SELECT pg_notify($1, $2)", pgChannel, string(b)); err != nil {
		return fmt.Errorf("pg_notify %s: %w", ev.Table, err)
	}
	return nil
}

func (f *PGFeed) Subscribe(_ context.Context, tables ...string) (Subscription, error) {
	return f.hub.subscribe(tables)
}

func (f *PGFeed) Close() error {
	f.cancel()
	<-f.done
	f.hub.close()
	return nil
}

// ==================================================
// pgx listener
// ==================================================

type pgListener struct {
	conn *pgxpool.Conn
}

func listen(ctx context.Context, pool *pgxpool.Pool) (listener, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire listener conn: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w", pgChannel, err)
	}
	return &pgListener{conn: conn}, nil
}

func (l *pgListener) Wait(ctx context.Context) (string, error) {
	n, err := l.conn.Conn().WaitForNotification(ctx)
	if err != nil {
		return "", err
	}
	return n.Payload, nil
}

// Close drops the session instead of pooling it, since it may be mid-wait or
// still subscribed to the channel.
func (l *pgListener) Close() {
	_ = l.conn.Conn().Close(context.Background())
	l.conn.Release()
}
