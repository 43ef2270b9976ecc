package dto

import (
	"github.com/BruksfildServices01/salon-manager/internal/domain/stock"
)

type ProductRequest struct {
	stock.Product
	ExpirationDate Date `json:"expiration_date"`
}

func (r ProductRequest) ToDomain() stock.Product {
	p := r.Product
	p.ID = ""
	p.ExpirationDate = r.ExpirationDate.Time
	return p
}

type ProductPatchRequest struct {
	stock.Patch
	ExpirationDate *Date `json:"expiration_date,omitempty"`
}

func (r ProductPatchRequest) ToDomain() stock.Patch {
	p := r.Patch
	p.ExpirationDate = timePtr(r.ExpirationDate)
	return p
}

type MovementRequest struct {
	Type     stock.MovementType `json:"type" binding:"required"`
	Quantity float64            `json:"quantity" binding:"required"`
	Reason   string             `json:"reason"`
	Notes    string             `json:"notes"`
}

func (r MovementRequest) ToDomain(productID string) stock.Movement {
	return stock.Movement{ProductID: productID, Type: r.Type, Quantity: r.Quantity, Reason: r.Reason, Notes: r.Notes}
}

// ProductDetail is a product with its movement history, newest first.
type ProductDetail struct {
	stock.Product
	LowStock  bool             `json:"low_stock"`
	Movements []stock.Movement `json:"movements"`
}
