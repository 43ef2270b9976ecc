package professional

import "time"

type PaymentModel string

const (
	PaymentCommission PaymentModel = "commission"
	PaymentFixed      PaymentModel = "fixed"
	PaymentHybrid     PaymentModel = "hybrid"
)

func (m PaymentModel) Valid() bool {
	return m == PaymentCommission || m == PaymentFixed || m == PaymentHybrid
}

func (m PaymentModel) UsesCommission() bool {
	return m == PaymentCommission || m == PaymentHybrid
}

func (m PaymentModel) UsesFixed() bool {
	return m == PaymentFixed || m == PaymentHybrid
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Specialty struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Active bool   `json:"active"`
}

type HistoryEntry struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
}

type Professional struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Document string    `json:"document"`
	PhotoURL string    `json:"photo_url"`
	Status   Status    `json:"status"`
	HireDate time.Time `json:"hire_date"`
	Notes    string    `json:"notes"`

	PaymentModel   PaymentModel `json:"payment_model"`
	CommissionRate float64      `json:"commission_rate"`
	FixedSalary    float64      `json:"fixed_salary"`

	Specialties []Specialty `json:"specialties"`
	WorkingDays []string    `json:"working_days"`
	// newest first
	History []HistoryEntry `json:"history"`
}

// NormalizePayment zeroes the rate field the payment model does not use.
func (p *Professional) NormalizePayment() {
	p.CommissionRate, p.FixedSalary = NormalizeRates(p.PaymentModel, p.CommissionRate, p.FixedSalary)
}

func NormalizeRates(m PaymentModel, commission, salary float64) (float64, float64) {
	if !m.UsesCommission() {
		commission = 0
	}
	if !m.UsesFixed() {
		salary = 0
	}
	return commission, salary
}

func (p Professional) SpecialtyIDs() []string {
	ids := make([]string, 0, len(p.Specialties))
	for _, s := range p.Specialties {
		ids = append(ids, s.ID)
	}
	return ids
}

// Patch carries only the fields to change. Non-nil SpecialtyIDs or
// WorkingDays replace the whole link set.
type Patch struct {
	Name           *string       `json:"name,omitempty"`
	Email          *string       `json:"email,omitempty"`
	Phone          *string       `json:"phone,omitempty"`
	Document       *string       `json:"document,omitempty"`
	PhotoURL       *string       `json:"photo_url,omitempty"`
	Status         *Status       `json:"status,omitempty"`
	HireDate       *time.Time    `json:"hire_date,omitempty"`
	Notes          *string       `json:"notes,omitempty"`
	PaymentModel   *PaymentModel `json:"payment_model,omitempty"`
	CommissionRate *float64      `json:"commission_rate,omitempty"`
	FixedSalary    *float64      `json:"fixed_salary,omitempty"`
	SpecialtyIDs   *[]string     `json:"specialty_ids,omitempty"`
	WorkingDays    *[]string     `json:"working_days,omitempty"`
}

type SpecialtyPatch struct {
	Name   *string `json:"name,omitempty"`
	Color  *string `json:"color,omitempty"`
	Active *bool   `json:"active,omitempty"`
}
