package store

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/gateway/gatewaytest"
	"github.com/BruksfildServices01/salon-manager/internal/notify"
)

// newGateway returns a memory gateway whose clock advances one millisecond per
// insert, so created_at ordering is deterministic, and a recorder around it.
func newGateway() (*gateway.MemoryGateway, *gatewaytest.Recorder) {
	var tick atomic.Int64
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mem := gateway.NewMemoryGateway(gateway.WithClock(func() time.Time {
		return start.Add(time.Duration(tick.Add(1)) * time.Millisecond)
	}))
	return mem, gatewaytest.Wrap(mem)
}

func testDeps(g gateway.Gateway, n notify.Notifier) Deps {
	if n == nil {
		n = notify.Nop{}
	}
	return Deps{Gateway: g, Notifier: n}
}

func count(t *testing.T, g gateway.Gateway, table string, filters ...gateway.Filter) int {
	t.Helper()
	rows, err := g.Select(context.Background(), table, gateway.Where(filters...))
	require.NoError(t, err)
	return len(rows)
}

