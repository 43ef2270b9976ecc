package stock

import "time"

type Supplier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Document    string `json:"document"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`

	// Not persisted; always empty when read from the gateway.
	Orders []Order `json:"orders"`
}

type Order struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Total       float64   `json:"total"`
	Status      string    `json:"status"`
	Attachments []string  `json:"attachments"`
}

type SupplierPatch struct {
	Name        *string `json:"name,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Document    *string `json:"document,omitempty"`
	Address     *string `json:"address,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}
