package models

import "time"

// Cliente do salão, sem login
type Client struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:100" json:"email"`
	Phone     string     `gorm:"size:20;index" json:"phone"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date"`
	Status    string     `gorm:"size:20;default:'active';index" json:"status"`
	Tags      string     `gorm:"type:jsonb;default:'[]'" json:"tags"`
	Notes     string     `gorm:"type:text" json:"notes"`

	Points      int     `gorm:"default:0" json:"points"`
	Cashback    float64 `gorm:"type:double precision;default:0" json:"cashback"`
	TotalSpent  float64 `gorm:"type:double precision;default:0" json:"total_spent"`
	VisitsCount int     `gorm:"default:0" json:"visits_count"`

	CreatedAt time.Time `gorm:"type:timestamptz;default:now()" json:"created_at"`
}
