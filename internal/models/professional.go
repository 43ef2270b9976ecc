package models

import "time"

type Professional struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name     string     `gorm:"size:100;not null" json:"name"`
	Email    string     `gorm:"size:100" json:"email"`
	Phone    string     `gorm:"size:20" json:"phone"`
	Document string     `gorm:"size:20" json:"document"`
	PhotoURL string     `gorm:"size:500" json:"photo_url"`
	Status   string     `gorm:"size:20;default:'active'" json:"status"`
	HireDate *time.Time `gorm:"type:date" json:"hire_date"`
	Notes    string     `gorm:"type:text" json:"notes"`

	PaymentModel   string  `gorm:"size:20;default:'commission'" json:"payment_model"`
	CommissionRate float64 `gorm:"type:double precision;default:0" json:"commission_rate"`
	FixedSalary    float64 `gorm:"type:double precision;default:0" json:"fixed_salary"`

	CreatedAt time.Time `gorm:"type:timestamptz;default:now()" json:"created_at"`
}

type Specialty struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Color     string    `gorm:"size:20" json:"color"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `gorm:"type:timestamptz;default:now()" json:"created_at"`
}

type ProfessionalSpecialty struct {
	ID             string        `gorm:"type:uuid;primaryKey" json:"id"`
	ProfessionalID string        `gorm:"type:uuid;not null;index" json:"professional_id"`
	Professional   *Professional `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	SpecialtyID    string        `gorm:"type:uuid;not null;index" json:"specialty_id"`
	Specialty      *Specialty    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	CreatedAt      time.Time     `gorm:"type:timestamptz;default:now()" json:"created_at"`
}

func (ProfessionalSpecialty) TableName() string { return "professional_specialties" }

// ProfessionalWorkingDay holds one weekday name ("segunda", "terca", ...).
type ProfessionalWorkingDay struct {
	ID             string        `gorm:"type:uuid;primaryKey" json:"id"`
	ProfessionalID string        `gorm:"type:uuid;not null;index" json:"professional_id"`
	Professional   *Professional `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Day            string        `gorm:"size:20;not null" json:"day"`
	CreatedAt      time.Time     `gorm:"type:timestamptz;default:now()" json:"created_at"`
}

type ProfessionalHistory struct {
	ID             string        `gorm:"type:uuid;primaryKey" json:"id"`
	ProfessionalID string        `gorm:"type:uuid;not null;index" json:"professional_id"`
	Professional   *Professional `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Date           *time.Time    `gorm:"type:date" json:"date"`
	Type           string        `gorm:"size:50" json:"type"`
	Description    string        `gorm:"type:text" json:"description"`
	CreatedAt      time.Time     `gorm:"type:timestamptz;default:now()" json:"created_at"`
}

func (ProfessionalHistory) TableName() string { return "professional_history" }
