package collection

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/gateway/gatewaytest"
	"github.com/BruksfildServices01/salon-manager/internal/notify"
)

type item struct {
	ID   string
	Name string
}

func itemLoader(g gateway.Gateway) Loader[item] {
	return func(ctx context.Context) ([]item, error) {
		rows, err := g.Select(ctx, "items", gateway.Query{}.OrderBy("name", false))
		if err != nil {
			return nil, err
		}
		out := make([]item, 0, len(rows))
		for _, r := range rows {
			out = append(out, item{ID: r["id"].(string), Name: r["name"].(string)})
		}
		return out, nil
	}
}

func newItems(t *testing.T, g gateway.Gateway, n notify.Notifier) *Collection[item] {
	t.Helper()
	c := New(g, itemLoader(g), Options{Name: "itens", Tables: []string{"items"}, Notifier: n})
	t.Cleanup(c.Close)
	return c
}

func TestStartLoadsAndRefetchesOnChangeEvents(t *testing.T) {
	mem := gateway.NewMemoryGateway()
	mem.Seed("items", gateway.Row{"id": "1", "name": "a"})
	c := newItems(t, mem, nil)

	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, []item{{ID: "1", Name: "a"}}, c.Items())

	_, err := mem.Insert(context.Background(), "items", gateway.Row{"id": "2", "name": "b"})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(c.Items()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestEventsOnOtherTablesAreIgnored(t *testing.T) {
	mem := gateway.NewMemoryGateway()
	rec := gatewaytest.Wrap(mem)
	c := newItems(t, rec, nil)
	require.NoError(t, c.Start(context.Background()))

	rec.Reset()
	_, err := mem.Insert(context.Background(), "other", gateway.Row{"name": "x"})
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, rec.Calls())
}

func TestFetchIsIdempotent(t *testing.T) {
	mem := gateway.NewMemoryGateway()
	mem.Seed("items", gateway.Row{"id": "1", "name": "b"}, gateway.Row{"id": "2", "name": "a"})
	c := newItems(t, mem, nil)

	first := c.Fetch(context.Background())
	second := c.Fetch(context.Background())
	assert.Equal(t, first, second)
	assert.Equal(t, "a", first[0].Name)
}

func TestFailedFetchKeepsPreviousSnapshot(t *testing.T) {
	mem := gateway.NewMemoryGateway()
	mem.Seed("items", gateway.Row{"id": "1", "name": "a"})
	rec := gatewaytest.Wrap(mem)
	ring := notify.NewRing(10)
	c := newItems(t, rec, ring)

	before := c.Fetch(context.Background())
	require.Len(t, before, 1)

	rec.FailOn("select", "items", 0)
	after := c.Fetch(context.Background())

	assert.Equal(t, before, after)
	assert.Equal(t, before, c.Items())
	assert.ErrorIs(t, c.LastError(), gatewaytest.ErrInjected)
	assert.Equal(t, 1, ring.Count(notify.VariantDestructive))

	rec.ClearHooks()
	c.Fetch(context.Background())
	assert.NoError(t, c.LastError())
}

func TestNewerFetchWinsOverSlowerOlderOne(t *testing.T) {
	var calls atomic.Int32
	release := []chan struct{}{make(chan struct{}), make(chan struct{})}
	results := [][]item{{{ID: "old"}}, {{ID: "new"}}}

	load := func(ctx context.Context) ([]item, error) {
		i := calls.Add(1) - 1
		<-release[i]
		return results[i], nil
	}
	c := New(gateway.NewMemoryGateway(), load, Options{Name: "itens"})

	firstDone := make(chan []item)
	go func() { firstDone <- c.Fetch(context.Background()) }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	secondDone := make(chan []item)
	go func() { secondDone <- c.Fetch(context.Background()) }()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)
	assert.True(t, c.Loading())

	// the later request completes first
	close(release[1])
	assert.Equal(t, []item{{ID: "new"}}, <-secondDone)

	close(release[0])
	assert.Equal(t, []item{{ID: "new"}}, <-firstDone)
	assert.Equal(t, []item{{ID: "new"}}, c.Items())
	assert.False(t, c.Loading())
}

func TestOlderFetchFailingAfterNewerSuccessIsSilent(t *testing.T) {
	var calls atomic.Int32
	release := []chan struct{}{make(chan struct{}), make(chan struct{})}

	load := func(ctx context.Context) ([]item, error) {
		i := calls.Add(1) - 1
		<-release[i]
		if i == 0 {
			return nil, errors.New("timeout")
		}
		return []item{{ID: "new"}}, nil
	}
	ring := notify.NewRing(10)
	c := New(gateway.NewMemoryGateway(), load, Options{Name: "itens", Notifier: ring})

	firstDone := make(chan []item)
	go func() { firstDone <- c.Fetch(context.Background()) }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	secondDone := make(chan []item)
	go func() { secondDone <- c.Fetch(context.Background()) }()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)

	close(release[1])
	assert.Equal(t, []item{{ID: "new"}}, <-secondDone)

	close(release[0])
	assert.Equal(t, []item{{ID: "new"}}, <-firstDone)
	assert.NoError(t, c.LastError())
	assert.Zero(t, ring.Count(notify.VariantDestructive))
}

func TestCompletionAfterCloseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	load := func(ctx context.Context) ([]item, error) {
		<-release
		return []item{{ID: "late"}}, nil
	}
	c := New(gateway.NewMemoryGateway(), load, Options{Name: "itens"})

	done := make(chan struct{})
	go func() {
		c.Fetch(context.Background())
		close(done)
	}()
	require.Eventually(t, c.Loading, time.Second, time.Millisecond)

	c.Close()
	close(release)
	<-done

	assert.Empty(t, c.Items())
}

func TestMutateRefetchesOnlyOnSuccess(t *testing.T) {
	mem := gateway.NewMemoryGateway()
	rec := gatewaytest.Wrap(mem)
	ring := notify.NewRing(10)
	c := newItems(t, rec, ring)

	boom := errors.New("boom")
	err := c.Mutate(context.Background(), Action{Success: "ok", Failure: "Erro"}, func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rec.Calls())
	assert.Equal(t, 1, ring.Count(notify.VariantDestructive))

	err = c.Mutate(context.Background(), Action{Success: "Item criado", Failure: "Erro"}, func(ctx context.Context) error {
		_, err := rec.Insert(ctx, "items", gateway.Row{"name": "novo"})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"insert items"}, rec.Writes())
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "novo", c.Items()[0].Name)
	assert.Equal(t, "Item criado", ring.Recent()[0].Title)
}

func TestOnChangeSeesAppliedSnapshots(t *testing.T) {
	mem := gateway.NewMemoryGateway()
	mem.Seed("items", gateway.Row{"id": "1", "name": "a"})
	c := newItems(t, mem, nil)

	var got [][]item
	c.OnChange(func(items []item) { got = append(got, items) })
	c.Fetch(context.Background())

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0][0].Name)
}

func TestStartReportsSubscribeError(t *testing.T) {
	mem := gateway.NewMemoryGateway()
	c := New(mem, itemLoader(mem), Options{Name: "itens"})
	defer c.Close()

	// no tables to watch
	err := c.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, err, c.Start(context.Background()))
}
