package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/collection"
	"github.com/BruksfildServices01/salon-manager/internal/domain/client"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/lock"
	"github.com/BruksfildServices01/salon-manager/internal/mapper"
)

type ClientStore struct {
	gw     gateway.Gateway
	logger *zap.Logger
	locker lock.Locker
	col    *collection.Collection[client.Client]

	mu     sync.RWMutex
	filter client.Filter
}

func NewClientStore(d Deps) *ClientStore {
	s := &ClientStore{gw: d.Gateway, logger: d.logger(), locker: d.locker()}
	s.col = collection.New(d.Gateway, s.load, collection.Options{
		Name:     "clientes",
		Tables:   []string{TableClients},
		Notifier: d.Notifier,
		Logger:   d.logger(),
	})
	return s
}

func (s *ClientStore) Start(ctx context.Context) error { return s.col.Start(ctx) }
func (s *ClientStore) Close()                          { s.col.Close() }

func (s *ClientStore) Collection() *collection.Collection[client.Client] { return s.col }

func (s *ClientStore) Items() []client.Client { return s.col.Items() }

// Fetch replaces the active filter and reloads.
func (s *ClientStore) Fetch(ctx context.Context, f client.Filter) []client.Client {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
	return s.col.Fetch(ctx)
}

func (s *ClientStore) Get(id string) (client.Client, bool) {
	return s.col.Find(func(c client.Client) bool { return c.ID == id })
}

func (s *ClientStore) load(ctx context.Context) ([]client.Client, error) {
	s.mu.RLock()
	f := s.filter
	s.mu.RUnlock()

	q := gateway.Query{}
	if f.Status != "" {
		q = gateway.Where(gateway.Eq("status", string(f.Status)))
	}

	rows, err := s.gw.Select(ctx, TableClients, q.OrderBy("name", false))
	if err != nil {
		return nil, err
	}
	out := make([]client.Client, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.ClientToDomain(r))
	}
	return out, nil
}

func (s *ClientStore) Create(ctx context.Context, c client.Client) (string, error) {
	if c.Status == "" {
		c.Status = client.StatusActive
	}

	var id string
	err := s.col.Mutate(ctx, collection.Action{
		Success: "Cliente cadastrado",
		Failure: "Erro ao cadastrar cliente",
	}, func(ctx context.Context) error {
		stored, err := s.gw.Insert(ctx, TableClients, mapper.ClientToWire(c))
		if err != nil {
			return err
		}
		id = rowID(stored)
		return nil
	})
	return id, err
}

func (s *ClientStore) Update(ctx context.Context, id string, p client.Patch) error {
	return s.col.Mutate(ctx, collection.Action{
		Success: "Cliente atualizado",
		Failure: "Erro ao atualizar cliente",
	}, func(ctx context.Context) error {
		row := mapper.ClientPatchToWire(p)
		if len(row) == 0 {
			return nil
		}
		return s.gw.Update(ctx, TableClients, id, row)
	})
}

// Credit adds visits and spent to the client's counters. The current values
// are read from the gateway under the client's lock, so concurrent credits
// add up instead of overwriting each other. Negative arguments undo a credit.
func (s *ClientStore) Credit(ctx context.Context, id string, visits int, spent float64) error {
	return s.col.Mutate(ctx, collection.Action{
		Success: "Cliente atualizado",
		Failure: "Erro ao atualizar cliente",
	}, func(ctx context.Context) error {
		release, err := s.locker.Acquire(ctx, "client:"+id)
		if err != nil {
			return err
		}
		defer release()

		row, err := selectOne(ctx, s.gw, TableClients, id)
		if err != nil {
			return err
		}
		current := mapper.ClientToDomain(row)

		return s.gw.Update(ctx, TableClients, id, mapper.ClientPatchToWire(client.Patch{
			VisitsCount: ptr(current.VisitsCount + visits),
			TotalSpent:  ptr(current.TotalSpent + spent),
		}))
	})
}

func (s *ClientStore) Delete(ctx context.Context, id string) error {
	return s.col.Mutate(ctx, collection.Action{
		Success: "Cliente removido",
		Failure: "Erro ao remover cliente",
	}, func(ctx context.Context) error {
		return s.gw.Delete(ctx, TableClients, gateway.ByID(id))
	})
}
