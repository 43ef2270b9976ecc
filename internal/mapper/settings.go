package mapper

import (
	"github.com/BruksfildServices01/salon-manager/internal/domain/business"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
)

func SettingsToDomain(row gateway.Row) business.Settings {
	return business.Settings{
		ID:             str(row, "id"),
		Name:           str(row, "name"),
		Phone:          str(row, "phone"),
		Address:        str(row, "address"),
		LogoURL:        str(row, "logo_url"),
		Timezone:       str(row, "timezone"),
		PaymentMethods: stringList(row, "payment_methods"),
	}
}

func SettingsToWire(s business.Settings) gateway.Row {
	row := gateway.Row{
		"name":            s.Name,
		"phone":           s.Phone,
		"address":         s.Address,
		"logo_url":        s.LogoURL,
		"timezone":        s.Timezone,
		"payment_methods": wireList(s.PaymentMethods),
	}
	if s.ID != "" {
		row["id"] = s.ID
	}
	return row
}

func SettingsPatchToWire(p business.Patch) gateway.Row {
	row := gateway.Row{}
	for key, v := range map[string]*string{
		"name":     p.Name,
		"phone":    p.Phone,
		"address":  p.Address,
		"logo_url": p.LogoURL,
		"timezone": p.Timezone,
	} {
		if v != nil {
			row[key] = *v
		}
	}
	if p.PaymentMethods != nil {
		row["payment_methods"] = wireList(*p.PaymentMethods)
	}
	return row
}
