package stock

import "time"

type CommissionType string

const (
	CommissionPercentage CommissionType = "percentage"
	CommissionFixed      CommissionType = "fixed"
)

type Commission struct {
	Type  CommissionType `json:"type"`
	Value float64        `json:"value"`
}

// Amount is the commission owed on a sale at price.
func (c Commission) Amount(price float64) float64 {
	switch c.Type {
	case CommissionPercentage:
		return price * c.Value / 100
	case CommissionFixed:
		return c.Value
	}
	return 0
}

type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"`
	UnitValue float64 `json:"unit_value"`

	SupplierID    string  `json:"supplier_id"`
	PurchasePrice float64 `json:"purchase_price"`
	SalePrice     float64 `json:"sale_price"`

	// changed only through movements
	Quantity    float64 `json:"quantity"`
	MinQuantity float64 `json:"min_quantity"`

	// zero when the product does not expire
	ExpirationDate time.Time `json:"expiration_date"`

	LinkedServices []string   `json:"linked_services"`
	Commission     Commission `json:"commission"`
}

func (p Product) LowStock() bool {
	return p.Quantity <= p.MinQuantity
}

// ExpiresWithin reports whether the product expires before now+window. Already
// expired products count.
func (p Product) ExpiresWithin(now time.Time, window time.Duration) bool {
	if p.ExpirationDate.IsZero() {
		return false
	}
	return p.ExpirationDate.Before(now.Add(window))
}

// Patch has no quantity: stock only moves through movements.
type Patch struct {
	Name           *string     `json:"name,omitempty"`
	Category       *string     `json:"category,omitempty"`
	Unit           *string     `json:"unit,omitempty"`
	UnitValue      *float64    `json:"unit_value,omitempty"`
	SupplierID     *string     `json:"supplier_id,omitempty"`
	PurchasePrice  *float64    `json:"purchase_price,omitempty"`
	SalePrice      *float64    `json:"sale_price,omitempty"`
	MinQuantity    *float64    `json:"min_quantity,omitempty"`
	ExpirationDate *time.Time  `json:"expiration_date,omitempty"`
	LinkedServices *[]string   `json:"linked_services,omitempty"`
	Commission     *Commission `json:"commission,omitempty"`
}
