package appointment

import "time"

// ServiceLineItem is a service performed in an appointment. Name, duration
// and price are snapshots taken when the appointment was booked.
type ServiceLineItem struct {
	ServiceID string  `json:"service_id"`
	Name      string  `json:"name"`
	Duration  int     `json:"duration"`
	Price     float64 `json:"price"`
}

type Appointment struct {
	ID             string `json:"id"`
	ClientID       string `json:"client_id"`
	ProfessionalID string `json:"professional_id"`

	// calendar day only, UTC midnight
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Duration  int       `json:"duration"`

	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	TotalValue    float64       `json:"total_value"`
	Notes         string        `json:"notes"`

	Services []ServiceLineItem `json:"services"`

	CreatedAt time.Time `json:"created_at"`
}

// LineItemsDuration sums the services' minutes. It is informational; the
// stored Duration is whatever the caller booked.
func (a Appointment) LineItemsDuration() int {
	total := 0
	for _, s := range a.Services {
		total += s.Duration
	}
	return total
}

func (a Appointment) LineItemsTotal() float64 {
	total := 0.0
	for _, s := range a.Services {
		total += s.Price
	}
	return total
}

// Patch carries only the fields to change. A non-nil Services replaces the
// whole set of line items.
type Patch struct {
	ClientID       *string            `json:"client_id,omitempty"`
	ProfessionalID *string            `json:"professional_id,omitempty"`
	Date           *time.Time         `json:"date,omitempty"`
	StartTime      *string            `json:"start_time,omitempty"`
	EndTime        *string            `json:"end_time,omitempty"`
	Duration       *int               `json:"duration,omitempty"`
	Status         *Status            `json:"status,omitempty"`
	PaymentStatus  *PaymentStatus     `json:"payment_status,omitempty"`
	TotalValue     *float64           `json:"total_value,omitempty"`
	Notes          *string            `json:"notes,omitempty"`
	Services       *[]ServiceLineItem `json:"services,omitempty"`
}

func (p Patch) Empty() bool {
	return p == (Patch{})
}

// Filter narrows the appointments a store keeps. Zero values mean no bound.
type Filter struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	ProfessionalID string    `json:"professional_id"`
	ClientID       string    `json:"client_id"`
	Status         Status    `json:"status"`
}

// Matches applies the filter to an already loaded appointment.
func (f Filter) Matches(a Appointment) bool {
	if !f.From.IsZero() && a.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && a.Date.After(f.To) {
		return false
	}
	if f.ProfessionalID != "" && a.ProfessionalID != f.ProfessionalID {
		return false
	}
	if f.ClientID != "" && a.ClientID != f.ClientID {
		return false
	}
	return f.Status == "" || a.Status == f.Status
}
