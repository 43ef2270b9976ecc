package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-manager/internal/realtime"
)

// GormGateway serves the gateway contract from Postgres through gorm, using
// untyped maps so every table goes through the same code path.
type GormGateway struct {
	db     *gorm.DB
	feed   realtime.Feed
	logger *zap.Logger
}

func NewGormGateway(db *gorm.DB, feed realtime.Feed, logger *zap.Logger) *GormGateway {
	return &GormGateway{db: db, feed: feed, logger: logger}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (g *GormGateway) Select(ctx context.Context, table string, q Query) ([]Row, error) {
	exprs, err := expressions(q.Filters)
	if err != nil {
		return nil, err
	}

	tx := g.db.WithContext(ctx).Table(table)
	if len(exprs) > 0 {
		tx = tx.Where(clause.And(exprs...))
	}
	for _, o := range q.Order {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}

	var found []map[string]any
	if err := tx.Find(&found).Error; err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}

	rows := make([]Row, 0, len(found))
	for _, r := range found {
		rows = append(rows, Row(r))
	}
	return rows, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (g *GormGateway) Insert(ctx context.Context, table string, row Row) (Row, error) {
	values, err := columnValues(row)
	if err != nil {
		return nil, err
	}
	id, _ := values["id"].(string)
	if id == "" {
		id = uuid.NewString()
		values["id"] = id
	}

	if err := g.db.WithContext(ctx).Table(table).Create(values).Error; err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}

	// read back so database defaults (created_at, ...) reach the caller
	rows, err := g.Select(ctx, table, Where(ByID(id)))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert %s %s: %w", table, id, ErrNotFound)
	}

	g.publish(ctx, realtime.EventInsert, table, rows[0])
	return rows[0], nil
}

func (g *GormGateway) Update(ctx context.Context, table, id string, patch Row) error {
	if len(patch) == 0 {
		return ErrEmptyUpdate
	}
	values, err := columnValues(patch)
	if err != nil {
		return err
	}
	delete(values, "id")

	res := g.db.WithContext(ctx).
		Table(table).
		Where(clause.Eq{Column: clause.Column{Name: "id"}, Value: id}).
		Updates(values)
	if res.Error != nil {
		return fmt.Errorf("update %s %s: %w", table, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update %s %s: %w", table, id, ErrNotFound)
	}

	payload := Row(values)
	payload["id"] = id
	g.publish(ctx, realtime.EventUpdate, table, payload)
	return nil
}

func (g *GormGateway) Delete(ctx context.Context, table string, filters ...Filter) error {
	if len(filters) == 0 {
		return ErrNoFilter
	}
	exprs, err := expressions(filters)
	if err != nil {
		return err
	}

	res := g.db.WithContext(ctx).Exec(
		"DELETE FROM ? WHERE ?",
		clause.Table{Name: table},
		clause.And(exprs...),
	)
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", table, res.Error)
	}

	if res.RowsAffected > 0 {
		payload := make(map[string]any, len(filters))
		for _, f := range filters {
			payload[f.Column] = f.Value
		}
		g.publish(ctx, realtime.EventDelete, table, payload)
	}
	return nil
}

func (g *GormGateway) Subscribe(ctx context.Context, tables ...string) (realtime.Subscription, error) {
	return g.feed.Subscribe(ctx, tables...)
}

func (g *GormGateway) publish(ctx context.Context, t realtime.EventType, table string, payload map[string]any) {
	if err := g.feed.Publish(ctx, realtime.ChangeEvent{Type: t, Table: table, Payload: payload}); err != nil {
		g.logger.Warn("change event not published",
			zap.String("table", table),
			zap.String("event", string(t)),
			zap.Error(err),
		)
	}
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func expressions(filters []Filter) ([]clause.Expression, error) {
	exprs := make([]clause.Expression, 0, len(filters))
	for _, f := range filters {
		col := clause.Column{Name: f.Column}
		switch f.Op {
		case OpEq:
			exprs = append(exprs, clause.Eq{Column: col, Value: f.Value})
		case OpNeq:
			exprs = append(exprs, clause.Neq{Column: col, Value: f.Value})
		case OpGte:
			exprs = append(exprs, clause.Gte{Column: col, Value: f.Value})
		case OpLte:
			exprs = append(exprs, clause.Lte{Column: col, Value: f.Value})
		case OpIn:
			ids := inValues(f.Value)
			values := make([]any, 0, len(ids))
			for _, id := range ids {
				values = append(values, id)
			}
			exprs = append(exprs, clause.IN{Column: col, Values: values})
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownOp, f.Op)
		}
	}
	return exprs, nil
}

// columnValues turns list and object values into JSON text for jsonb columns.
func columnValues(row Row) (map[string]any, error) {
	out := make(map[string]any, len(row))
	for k, v := range row {
		switch v.(type) {
		case []string, []any, map[string]any:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", k, err)
			}
			out[k] = string(b)
		default:
			out[k] = v
		}
	}
	return out, nil
}
