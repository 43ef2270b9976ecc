package models

import "time"

type User struct {
	ID             string        `gorm:"type:uuid;primaryKey" json:"id"`
	ProfessionalID *string       `gorm:"type:uuid" json:"professional_id"`
	Professional   *Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`
	// Permissions overrides the role defaults when not empty.
	Permissions string `gorm:"type:jsonb;default:'{}'" json:"permissions"`
	Active      bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `gorm:"type:timestamptz;default:now()" json:"created_at"`
}
