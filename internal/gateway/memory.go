package gateway

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-manager/internal/realtime"
)

// MemoryGateway keeps tables in process memory. It is used for local
// development (GATEWAY_DRIVER=memory) and as the backing store in tests.
type MemoryGateway struct {
	mu     sync.RWMutex
	tables map[string][]Row
	feed   realtime.Feed
	now    func() time.Time
}

type MemoryOption func(*MemoryGateway)

func WithClock(now func() time.Time) MemoryOption {
	return func(g *MemoryGateway) { g.now = now }
}

func WithFeed(feed realtime.Feed) MemoryOption {
	return func(g *MemoryGateway) { g.feed = feed }
}

func NewMemoryGateway(opts ...MemoryOption) *MemoryGateway {
	g := &MemoryGateway{
		tables: make(map[string][]Row),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.feed == nil {
		g.feed = realtime.NewLocalFeed()
	}
	return g
}

func (g *MemoryGateway) Select(_ context.Context, table string, q Query) ([]Row, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Row, 0)
	for _, row := range g.tables[table] {
		ok, err := matchesAll(row, q.Filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row.Clone())
		}
	}

	if len(q.Order) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, o := range q.Order {
				c := compare(out[i][o.Column], out[j][o.Column])
				if c == 0 {
					continue
				}
				if o.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	return out, nil
}

func (g *MemoryGateway) Insert(ctx context.Context, table string, row Row) (Row, error) {
	stored := row.Clone()
	if id, _ := stored["id"].(string); id == "" {
		stored["id"] = uuid.NewString()
	}
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = g.now().UTC().Format(time.RFC3339Nano)
	}

	g.mu.Lock()
	for _, existing := range g.tables[table] {
		if existing["id"] == stored["id"] {
			g.mu.Unlock()
			return nil, fmt.Errorf("insert %s: duplicate id %v", table, stored["id"])
		}
	}
	g.tables[table] = append(g.tables[table], stored)
	g.mu.Unlock()

	g.publish(ctx, realtime.EventInsert, table, stored)
	return stored.Clone(), nil
}

func (g *MemoryGateway) Update(ctx context.Context, table, id string, patch Row) error {
	if len(patch) == 0 {
		return ErrEmptyUpdate
	}

	g.mu.Lock()
	var updated Row
	for _, row := range g.tables[table] {
		if row["id"] == id {
			for k, v := range patch {
				if k == "id" {
					continue
				}
				row[k] = v
			}
			updated = row.Clone()
			break
		}
	}
	g.mu.Unlock()

	if updated == nil {
		return fmt.Errorf("update %s %s: %w", table, id, ErrNotFound)
	}
	g.publish(ctx, realtime.EventUpdate, table, updated)
	return nil
}

func (g *MemoryGateway) Delete(ctx context.Context, table string, filters ...Filter) error {
	if len(filters) == 0 {
		return ErrNoFilter
	}

	g.mu.Lock()
	rows := g.tables[table]
	kept := rows[:0:0]
	removed := 0
	for _, row := range rows {
		ok, err := matchesAll(row, filters)
		if err != nil {
			g.mu.Unlock()
			return err
		}
		if ok {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	g.tables[table] = kept
	g.mu.Unlock()

	if removed > 0 {
		payload := make(map[string]any, len(filters))
		for _, f := range filters {
			payload[f.Column] = f.Value
		}
		g.publish(ctx, realtime.EventDelete, table, payload)
	}
	return nil
}

func (g *MemoryGateway) Subscribe(ctx context.Context, tables ...string) (realtime.Subscription, error) {
	return g.feed.Subscribe(ctx, tables...)
}

// Seed inserts rows without emitting change events.
func (g *MemoryGateway) Seed(table string, rows ...Row) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range rows {
		g.tables[table] = append(g.tables[table], r.Clone())
	}
}

func (g *MemoryGateway) publish(ctx context.Context, t realtime.EventType, table string, payload map[string]any) {
	// the local feed never fails; remote feeds are best effort like the
	// hosted backend's realtime channel
	_ = g.feed.Publish(ctx, realtime.ChangeEvent{Type: t, Table: table, Payload: payload})
}

func matchesAll(row Row, filters []Filter) (bool, error) {
	for _, f := range filters {
		ok, err := matches(row, f)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
