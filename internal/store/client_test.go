package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/domain/business"
	"github.com/BruksfildServices01/salon-manager/internal/domain/client"
	"github.com/BruksfildServices01/salon-manager/internal/notify"
)

func TestClientLifecycle(t *testing.T) {
	_, rec := newGateway()
	ring := notify.NewRing(10)
	s := NewClientStore(testDeps(rec, ring))
	defer s.Close()
	ctx := context.Background()

	ana, err := s.Create(ctx, client.Client{Name: "Ana", Tags: []string{"noivas"}})
	require.NoError(t, err)
	_, err = s.Create(ctx, client.Client{Name: "Bia", Status: client.StatusVIP})
	require.NoError(t, err)

	assert.Len(t, s.Fetch(ctx, client.Filter{}), 2)
	vips := s.Fetch(ctx, client.Filter{Status: client.StatusVIP})
	require.Len(t, vips, 1)
	assert.Equal(t, "Bia", vips[0].Name)

	s.Fetch(ctx, client.Filter{})
	require.NoError(t, s.Update(ctx, ana, client.Patch{VisitsCount: ptr(3), TotalSpent: ptr(300.0)}))
	got, ok := s.Get(ana)
	require.True(t, ok)
	assert.Equal(t, client.StatusActive, got.Status)
	assert.Equal(t, []string{"noivas"}, got.Tags)
	assert.Equal(t, 100.0, got.AverageTicket())

	require.NoError(t, s.Delete(ctx, ana))
	assert.Len(t, s.Items(), 1)

	assert.Zero(t, ring.Count(notify.VariantDestructive))
	assert.Equal(t, "Cliente removido", ring.Recent()[0].Title)
}

func TestSetStartsAndClosesEveryStore(t *testing.T) {
	mem, _ := newGateway()
	set := NewSet(testDeps(mem, nil))
	require.NoError(t, set.Start(context.Background()))
	set.Close()

	// closed collections ignore further fetches
	_, err := mem.Insert(context.Background(), TableClients, map[string]any{"name": "Depois"})
	require.NoError(t, err)
	assert.Empty(t, set.Clients.Collection().Fetch(context.Background()))
}

func TestSettingsCreatedOnFirstUpdate(t *testing.T) {
	mem, _ := newGateway()
	s := NewSettingsStore(testDeps(mem, nil))
	defer s.Close()
	ctx := context.Background()

	assert.Empty(t, s.Current().LogoURL)
	require.NoError(t, s.SetLogo(ctx, "https://cdn/logo.webp"))
	require.NoError(t, s.Update(ctx, business.Patch{Name: ptr("Studio Bella")}))

	assert.Equal(t, 1, count(t, mem, TableBusinessSettings))
	assert.Equal(t, "https://cdn/logo.webp", s.Current().LogoURL)
	assert.Equal(t, "Studio Bella", s.Current().Name)
}
