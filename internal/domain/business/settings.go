package business

// Settings is the single business profile row.
type Settings struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Address        string   `json:"address"`
	LogoURL        string   `json:"logo_url"`
	Timezone       string   `json:"timezone"`
	PaymentMethods []string `json:"payment_methods"`
}

type Patch struct {
	Name           *string   `json:"name,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Address        *string   `json:"address,omitempty"`
	LogoURL        *string   `json:"logo_url,omitempty"`
	Timezone       *string   `json:"timezone,omitempty"`
	PaymentMethods *[]string `json:"payment_methods,omitempty"`
}
