package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/collection"
	"github.com/BruksfildServices01/salon-manager/internal/domain/stock"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/mapper"
)

type SupplierStore struct {
	gw     gateway.Gateway
	logger *zap.Logger
	col    *collection.Collection[stock.Supplier]
}

func NewSupplierStore(d Deps) *SupplierStore {
	s := &SupplierStore{gw: d.Gateway, logger: d.logger()}
	s.col = collection.New(d.Gateway, s.load, collection.Options{
		Name:     "fornecedores",
		Tables:   []string{TableSuppliers},
		Notifier: d.Notifier,
		Logger:   d.logger(),
	})
	return s
}

func (s *SupplierStore) Start(ctx context.Context) error { return s.col.Start(ctx) }
func (s *SupplierStore) Close()                          { s.col.Close() }

func (s *SupplierStore) Collection() *collection.Collection[stock.Supplier] { return s.col }

func (s *SupplierStore) Items() []stock.Supplier { return s.col.Items() }

func (s *SupplierStore) Fetch(ctx context.Context) []stock.Supplier { return s.col.Fetch(ctx) }

func (s *SupplierStore) load(ctx context.Context) ([]stock.Supplier, error) {
	rows, err := s.gw.Select(ctx, TableSuppliers, gateway.Query{}.OrderBy("name", false))
	if err != nil {
		return nil, err
	}
	out := make([]stock.Supplier, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.SupplierToDomain(r))
	}
	return out, nil
}

func (s *SupplierStore) Create(ctx context.Context, sup stock.Supplier) (string, error) {
	var id string
	err := s.col.Mutate(ctx, collection.Action{
		Success: "Fornecedor cadastrado",
		Failure: "Erro ao cadastrar fornecedor",
	}, func(ctx context.Context) error {
		stored, err := s.gw.Insert(ctx, TableSuppliers, mapper.SupplierToWire(sup))
		if err != nil {
			return err
		}
		id = rowID(stored)
		return nil
	})
	return id, err
}

func (s *SupplierStore) Update(ctx context.Context, id string, p stock.SupplierPatch) error {
	return s.col.Mutate(ctx, collection.Action{
		Success: "Fornecedor atualizado",
		Failure: "Erro ao atualizar fornecedor",
	}, func(ctx context.Context) error {
		row := mapper.SupplierPatchToWire(p)
		if len(row) == 0 {
			return nil
		}
		return s.gw.Update(ctx, TableSuppliers, id, row)
	})
}

// Delete refuses to remove a supplier that products still reference; the
// products are not touched.
func (s *SupplierStore) Delete(ctx context.Context, id string) error {
	return s.col.Mutate(ctx, collection.Action{
		Success: "Fornecedor removido",
		Failure: "Erro ao remover fornecedor",
	}, func(ctx context.Context) error {
		linked, err := s.gw.Select(ctx, TableProducts, gateway.Where(gateway.Eq("supplier_id", id)))
		if err != nil {
			return err
		}
		if len(linked) > 0 {
			return fmt.Errorf("%w: %d product(s)", ErrSupplierInUse, len(linked))
		}
		return s.gw.Delete(ctx, TableSuppliers, gateway.ByID(id))
	})
}
