package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/realtime"
)

func TestMemoryInsertAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	g := NewMemoryGateway(WithClock(func() time.Time { return fixed }))

	row, err := g.Insert(ctx, "clients", Row{"name": "Ana"})
	require.NoError(t, err)

	assert.NotEmpty(t, row["id"])
	assert.Equal(t, fixed.Format(time.RFC3339Nano), row["created_at"])

	_, err = g.Insert(ctx, "clients", Row{"id": row["id"], "name": "dup"})
	assert.Error(t, err)
}

func TestMemorySelectFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryGateway()
	g.Seed("appointments",
		Row{"id": "a1", "date": "2026-03-02", "start_time": "10:00", "professional_id": "p1"},
		Row{"id": "a2", "date": "2026-03-01", "start_time": "15:00", "professional_id": "p1"},
		Row{"id": "a3", "date": "2026-03-01", "start_time": "09:00", "professional_id": "p2"},
		Row{"id": "a4", "date": "2026-04-01", "start_time": "09:00", "professional_id": "p1"},
	)

	rows, err := g.Select(ctx, "appointments",
		Where(Gte("date", "2026-03-01"), Lte("date", "2026-03-31")).
			OrderBy("date", false).
			OrderBy("start_time", false),
	)
	require.NoError(t, err)

	var ids []any
	for _, r := range rows {
		ids = append(ids, r["id"])
	}
	assert.Equal(t, []any{"a3", "a2", "a1"}, ids)

	rows, err = g.Select(ctx, "appointments", Where(In("id", []string{"a4", "a1"}), Eq("professional_id", "p1")))
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = g.Select(ctx, "appointments", Where(In("id", nil)))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemorySelectNumericOrdering(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryGateway()
	g.Seed("products", Row{"id": "x", "quantity": 10}, Row{"id": "y", "quantity": 9.5})

	rows, err := g.Select(ctx, "products", Query{}.OrderBy("quantity", true))
	require.NoError(t, err)
	assert.Equal(t, "x", rows[0]["id"])
}

func TestMemoryUpdateIsSparse(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryGateway()
	g.Seed("clients", Row{"id": "c1", "name": "Ana", "phone": "119"})

	require.NoError(t, g.Update(ctx, "clients", "c1", Row{"phone": "118"}))

	rows, err := g.Select(ctx, "clients", Where(ByID("c1")))
	require.NoError(t, err)
	assert.Equal(t, "Ana", rows[0]["name"])
	assert.Equal(t, "118", rows[0]["phone"])

	assert.ErrorIs(t, g.Update(ctx, "clients", "nope", Row{"name": "x"}), ErrNotFound)
	assert.ErrorIs(t, g.Update(ctx, "clients", "c1", Row{}), ErrEmptyUpdate)
}

func TestMemoryDeleteRequiresFilter(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryGateway()
	g.Seed("stock_movements", Row{"id": "m1", "product_id": "p1"}, Row{"id": "m2", "product_id": "p2"})

	assert.ErrorIs(t, g.Delete(ctx, "stock_movements"), ErrNoFilter)
	require.NoError(t, g.Delete(ctx, "stock_movements", Eq("product_id", "p1")))

	rows, err := g.Select(ctx, "stock_movements", Query{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "m2", rows[0]["id"])
}

func TestMemoryWritesEmitChangeEvents(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryGateway()

	sub, err := g.Subscribe(ctx, "products")
	require.NoError(t, err)
	defer sub.Close()

	row, err := g.Insert(ctx, "products", Row{"name": "Shampoo"})
	require.NoError(t, err)
	require.NoError(t, g.Update(ctx, "products", row["id"].(string), Row{"name": "Shampoo 2"}))
	require.NoError(t, g.Delete(ctx, "products", ByID(row["id"].(string))))
	// no match, no event
	require.NoError(t, g.Delete(ctx, "products", ByID("missing")))

	var got []realtime.EventType
	for i := 0; i < 3; i++ {
		ev := <-sub.Events()
		got = append(got, ev.Type)
	}
	assert.Equal(t, []realtime.EventType{realtime.EventInsert, realtime.EventUpdate, realtime.EventDelete}, got)
	assert.Len(t, sub.Events(), 0)
}

func TestColumnValuesEncodesLists(t *testing.T) {
	values, err := columnValues(Row{"tags": []string{"vip", "noivas"}, "name": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, `["vip","noivas"]`, values["tags"])
	assert.Equal(t, "Ana", values["name"])
}

func TestExpressionsRejectUnknownOperator(t *testing.T) {
	_, err := expressions([]Filter{{Column: "id", Op: "like", Value: "x"}})
	assert.ErrorIs(t, err, ErrUnknownOp)
}
