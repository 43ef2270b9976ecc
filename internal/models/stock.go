package models

import "time"

type Supplier struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	ContactName string    `gorm:"size:100" json:"contact_name"`
	Email       string    `gorm:"size:100" json:"email"`
	Phone       string    `gorm:"size:20" json:"phone"`
	Document    string    `gorm:"size:20" json:"document"`
	Address     string    `gorm:"size:255" json:"address"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `gorm:"type:timestamptz;default:now()" json:"created_at"`
}

type Product struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name      string  `gorm:"size:100;not null" json:"name"`
	Category  string  `gorm:"size:50" json:"category"`
	Unit      string  `gorm:"size:20" json:"unit"`
	UnitValue float64 `gorm:"type:double precision;default:0" json:"unit_value"`

	// sem ON DELETE: fornecedor com produtos não pode ser excluído
	SupplierID *string   `gorm:"type:uuid;index" json:"supplier_id"`
	Supplier   *Supplier `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	PurchasePrice  float64    `gorm:"type:double precision;default:0" json:"purchase_price"`
	SalePrice      float64    `gorm:"type:double precision;default:0" json:"sale_price"`
	Quantity       float64    `gorm:"type:double precision;default:0;check:quantity >= 0" json:"quantity"`
	MinQuantity    float64    `gorm:"type:double precision;default:0" json:"min_quantity"`
	ExpirationDate *time.Time `gorm:"type:date" json:"expiration_date"`
	LinkedServices string     `gorm:"type:jsonb;default:'[]'" json:"linked_services"`

	CommissionType  string  `gorm:"size:20" json:"commission_type"`
	CommissionValue float64 `gorm:"type:double precision;default:0" json:"commission_value"`

	CreatedAt time.Time `gorm:"type:timestamptz;default:now()" json:"created_at"`
}

type StockMovement struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string    `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Type      string    `gorm:"size:10;not null" json:"type"`
	Quantity  float64   `gorm:"type:double precision;not null" json:"quantity"`
	Reason    string    `gorm:"size:100" json:"reason"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"type:timestamptz;default:now();index" json:"created_at"`
}
