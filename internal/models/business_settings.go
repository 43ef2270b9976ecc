package models

import "time"

// BusinessSettings is a single-row table created on the first update.
type BusinessSettings struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:100" json:"name"`
	Phone          string    `gorm:"size:20" json:"phone"`
	Address        string    `gorm:"size:255" json:"address"`
	LogoURL        string    `gorm:"size:500" json:"logo_url"`
	Timezone       string    `gorm:"size:64;default:'America/Sao_Paulo'" json:"timezone"`
	PaymentMethods string    `gorm:"type:jsonb;default:'[]'" json:"payment_methods"`
	CreatedAt      time.Time `gorm:"type:timestamptz;default:now()" json:"created_at"`
}

func (BusinessSettings) TableName() string { return "business_settings" }
