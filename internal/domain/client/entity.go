package client

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusVIP      Status = "vip"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusVIP || s == StatusInactive
}

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	BirthDate time.Time `json:"birth_date"`
	Status    Status    `json:"status"`
	Tags      []string  `json:"tags"`
	Notes     string    `json:"notes"`

	Points      int     `json:"points"`
	Cashback    float64 `json:"cashback"`
	TotalSpent  float64 `json:"total_spent"`
	VisitsCount int     `json:"visits_count"`

	CreatedAt time.Time `json:"created_at"`
}

// AverageTicket is TotalSpent per visit, zero for clients with no visits.
func (c Client) AverageTicket() float64 {
	if c.VisitsCount <= 0 {
		return 0
	}
	return c.TotalSpent / float64(c.VisitsCount)
}

func (c Client) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type Patch struct {
	Name        *string    `json:"name,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Points      *int       `json:"points,omitempty"`
	Cashback    *float64   `json:"cashback,omitempty"`
	TotalSpent  *float64   `json:"total_spent,omitempty"`
	VisitsCount *int       `json:"visits_count,omitempty"`
}

type Filter struct {
	Status Status `json:"status"`
}

func (f Filter) Matches(c Client) bool {
	return f.Status == "" || c.Status == f.Status
}
