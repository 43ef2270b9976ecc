package models

import "time"

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID       *string       `gorm:"type:uuid;index" json:"client_id"`
	Client         *Client       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	ProfessionalID *string       `gorm:"type:uuid;index" json:"professional_id"`
	Professional   *Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date      *time.Time `gorm:"type:date;index" json:"date"`
	StartTime string     `gorm:"size:5" json:"start_time"`
	EndTime   string     `gorm:"size:5" json:"end_time"`
	Duration  int        `gorm:"default:0" json:"duration"`

	Status        string  `gorm:"size:20;default:'scheduled'" json:"status"`
	PaymentStatus string  `gorm:"size:20;default:'pending'" json:"payment_status"`
	TotalValue    float64 `gorm:"type:double precision;default:0" json:"total_value"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"type:timestamptz;default:now()" json:"created_at"`
}

// AppointmentService is one ordered service line of an appointment.
type AppointmentService struct {
	ID            string       `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID string       `gorm:"type:uuid;not null;index" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	ServiceID   *string `gorm:"size:64" json:"service_id"`
	ServiceName string  `gorm:"size:100" json:"service_name"`
	Duration    int     `gorm:"default:0" json:"duration"`
	Price       float64 `gorm:"type:double precision;default:0" json:"price"`
	Position    int     `gorm:"default:0" json:"position"`

	CreatedAt time.Time `gorm:"type:timestamptz;default:now()" json:"created_at"`
}
