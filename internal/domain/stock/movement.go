package stock

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidQuantity     = errors.New("movement quantity must be positive")
	ErrInvalidMovementType = errors.New("movement type must be in or out")
)

type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

type Movement struct {
	ID        string       `json:"id"`
	ProductID string       `json:"product_id"`
	Type      MovementType `json:"type"`
	Quantity  float64      `json:"quantity"`
	Reason    string       `json:"reason"`
	Notes     string       `json:"notes"`
	CreatedAt time.Time    `json:"created_at"`
}

// Apply returns the on-hand quantity after m. An out movement larger than
// current is rejected and current is returned unchanged.
func Apply(current float64, m Movement) (float64, error) {
	if m.Quantity <= 0 {
		return current, ErrInvalidQuantity
	}

	switch m.Type {
	case MovementIn:
		return current + m.Quantity, nil
	case MovementOut:
		if m.Quantity > current {
			return current, fmt.Errorf("%w: requested %v, available %v", ErrInsufficientStock, m.Quantity, current)
		}
		return current - m.Quantity, nil
	}
	return current, fmt.Errorf("%w: %q", ErrInvalidMovementType, m.Type)
}
