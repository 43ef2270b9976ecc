package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/collection"
	"github.com/BruksfildServices01/salon-manager/internal/domain/stock"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/lock"
	"github.com/BruksfildServices01/salon-manager/internal/mapper"
	"github.com/BruksfildServices01/salon-manager/internal/saga"
)

const initialStockReason = "Estoque inicial"

func ProductLockKey(id string) string { return "stock:product:" + id }

// StockStore keeps products and stock movements. Product quantity changes
// only through RegisterMovement.
type StockStore struct {
	gw        gateway.Gateway
	logger    *zap.Logger
	locker    lock.Locker
	products  *collection.Collection[stock.Product]
	movements *collection.Collection[stock.Movement]
}

func NewStockStore(d Deps) *StockStore {
	s := &StockStore{gw: d.Gateway, logger: d.logger(), locker: d.locker()}
	s.products = collection.New(d.Gateway, s.loadProducts, collection.Options{
		Name:     "produtos",
		Tables:   []string{TableProducts},
		Notifier: d.Notifier,
		Logger:   d.logger(),
	})
	s.movements = collection.New(d.Gateway, s.loadMovements, collection.Options{
		Name:     "movimentações",
		Tables:   []string{TableStockMovements},
		Notifier: d.Notifier,
		Logger:   d.logger(),
	})
	return s
}

func (s *StockStore) Start(ctx context.Context) error {
	if err := s.products.Start(ctx); err != nil {
		return err
	}
	return s.movements.Start(ctx)
}

func (s *StockStore) Close() {
	s.products.Close()
	s.movements.Close()
}

func (s *StockStore) Products() []stock.Product { return s.products.Items() }

func (s *StockStore) ProductCollection() *collection.Collection[stock.Product] { return s.products }

func (s *StockStore) MovementCollection() *collection.Collection[stock.Movement] {
	return s.movements
}

func (s *StockStore) FetchProducts(ctx context.Context) []stock.Product { return s.products.Fetch(ctx) }

func (s *StockStore) FetchMovements(ctx context.Context) []stock.Movement {
	return s.movements.Fetch(ctx)
}

func (s *StockStore) Product(id string) (stock.Product, bool) {
	return s.products.Find(func(p stock.Product) bool { return p.ID == id })
}

// Movements returns the product's movements oldest first. An empty productID
// returns every movement.
func (s *StockStore) Movements(productID string) []stock.Movement {
	all := s.movements.Items()
	if productID == "" {
		return all
	}
	out := make([]stock.Movement, 0)
	for _, m := range all {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

func (s *StockStore) loadProducts(ctx context.Context) ([]stock.Product, error) {
	rows, err := s.gw.Select(ctx, TableProducts, gateway.Query{}.OrderBy("name", false))
	if err != nil {
		return nil, err
	}
	out := make([]stock.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.ProductToDomain(r))
	}
	return out, nil
}

func (s *StockStore) loadMovements(ctx context.Context) ([]stock.Movement, error) {
	rows, err := s.gw.Select(ctx, TableStockMovements, gateway.Query{}.OrderBy("created_at", false))
	if err != nil {
		return nil, err
	}
	out := make([]stock.Movement, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.MovementToDomain(r))
	}
	return out, nil
}

// ==================================================
// Products
// ==================================================

// CreateProduct stores the product. A positive starting quantity is recorded
// as an "in" movement so the movement log accounts for all stock.
func (s *StockStore) CreateProduct(ctx context.Context, p stock.Product) (string, error) {
	if p.Quantity < 0 {
		return "", fmt.Errorf("create product: %w", stock.ErrInvalidQuantity)
	}

	var id string
	err := s.products.Mutate(ctx, collection.Action{
		Success: "Produto cadastrado",
		Failure: "Erro ao cadastrar produto",
	}, func(ctx context.Context) error {
		sg := saga.New("create product", s.logger)

		stored, err := insertStep(ctx, sg, s.gw, TableProducts, mapper.ProductToWire(p))
		if err != nil {
			return err
		}
		id = rowID(stored)

		if p.Quantity > 0 {
			m := stock.Movement{ProductID: id, Type: stock.MovementIn, Quantity: p.Quantity, Reason: initialStockReason}
			if _, err := insertStep(ctx, sg, s.gw, TableStockMovements, mapper.MovementToWire(m)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	s.movements.Fetch(ctx)
	return id, nil
}

// UpdateProduct sends only the fields present in p. Quantity is not part of a
// product patch.
func (s *StockStore) UpdateProduct(ctx context.Context, id string, p stock.Patch) error {
	return s.products.Mutate(ctx, collection.Action{
		Success: "Produto atualizado",
		Failure: "Erro ao atualizar produto",
	}, func(ctx context.Context) error {
		row := mapper.ProductPatchToWire(p)
		if len(row) == 0 {
			return nil
		}
		return s.gw.Update(ctx, TableProducts, id, row)
	})
}

// DeleteProduct removes the product's movements, then the product.
func (s *StockStore) DeleteProduct(ctx context.Context, id string) error {
	err := s.products.Mutate(ctx, collection.Action{
		Success: "Produto removido",
		Failure: "Erro ao remover produto",
	}, func(ctx context.Context) error {
		sg := saga.New("delete product", s.logger)
		if err := deleteStep(ctx, sg, s.gw, TableStockMovements, gateway.Eq("product_id", id)); err != nil {
			return err
		}
		return deleteStep(ctx, sg, s.gw, TableProducts, gateway.ByID(id))
	})
	if err != nil {
		return err
	}
	s.movements.Fetch(ctx)
	return nil
}

// ==================================================
// Movements
// ==================================================

// RegisterMovement validates m against the product's stored quantity, records
// the movement and writes the new quantity. An out movement larger than the
// quantity on hand fails with stock.ErrInsufficientStock and writes nothing.
// Movements on the same product are serialised so the stored quantity always
// equals the sum of its movements.
func (s *StockStore) RegisterMovement(ctx context.Context, m stock.Movement) (string, error) {
	var id string
	err := s.products.Mutate(ctx, collection.Action{
		Success: "Movimentação registrada",
		Failure: "Erro ao registrar movimentação",
	}, func(ctx context.Context) error {
		release, err := s.locker.Acquire(ctx, ProductLockKey(m.ProductID))
		if err != nil {
			return err
		}
		defer release()

		// --------------------------------------------------
		// 1️⃣ Quantidade atual (sempre do gateway)
		// --------------------------------------------------
		row, err := selectOne(ctx, s.gw, TableProducts, m.ProductID)
		if err != nil {
			return err
		}
		current := mapper.ProductToDomain(row).Quantity

		next, err := stock.Apply(current, m)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 2️⃣ Movimentação + saldo
		// --------------------------------------------------
		sg := saga.New("register movement", s.logger)
		stored, err := insertStep(ctx, sg, s.gw, TableStockMovements, mapper.MovementToWire(m))
		if err != nil {
			return err
		}
		id = rowID(stored)

		return updateStep(ctx, sg, s.gw, TableProducts, m.ProductID, gateway.Row{"quantity": next})
	})
	if err != nil {
		return "", err
	}
	s.movements.Fetch(ctx)
	return id, nil
}
