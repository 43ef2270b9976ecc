package mapper

import (
	"github.com/BruksfildServices01/salon-manager/internal/domain/professional"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
)

// ProfessionalRelations holds the child rows fetched separately for a batch
// of professionals; ProfessionalToDomain picks the ones it owns by id.
type ProfessionalRelations struct {
	Links       []gateway.Row // professional_specialties
	Specialties []gateway.Row // specialties catalog
	WorkingDays []gateway.Row // professional_working_days
	History     []gateway.Row // professional_history, newest first
}

func ProfessionalToDomain(row gateway.Row, rel ProfessionalRelations) professional.Professional {
	p := professional.Professional{
		ID:             str(row, "id"),
		Name:           str(row, "name"),
		Email:          str(row, "email"),
		Phone:          str(row, "phone"),
		Document:       str(row, "document"),
		PhotoURL:       str(row, "photo_url"),
		Status:         professional.Status(str(row, "status")),
		HireDate:       date(row, "hire_date"),
		Notes:          str(row, "notes"),
		PaymentModel:   professional.PaymentModel(str(row, "payment_model")),
		CommissionRate: float(row, "commission_rate"),
		FixedSalary:    float(row, "fixed_salary"),
		Specialties:    []professional.Specialty{},
		WorkingDays:    []string{},
		History:        []professional.HistoryEntry{},
	}
	if p.Status == "" {
		p.Status = professional.StatusActive
	}
	if p.PaymentModel == "" {
		p.PaymentModel = professional.PaymentCommission
	}

	catalog := make(map[string]gateway.Row, len(rel.Specialties))
	for _, s := range rel.Specialties {
		catalog[str(s, "id")] = s
	}
	for _, link := range rel.Links {
		if str(link, "professional_id") != p.ID {
			continue
		}
		id := str(link, "specialty_id")
		if s, ok := catalog[id]; ok {
			p.Specialties = append(p.Specialties, SpecialtyToDomain(s))
		} else {
			// link to a specialty we could not read; keep the reference
			p.Specialties = append(p.Specialties, professional.Specialty{ID: id})
		}
	}

	for _, wd := range rel.WorkingDays {
		if str(wd, "professional_id") == p.ID {
			p.WorkingDays = append(p.WorkingDays, str(wd, "day"))
		}
	}

	for _, h := range rel.History {
		if str(h, "professional_id") == p.ID {
			p.History = append(p.History, HistoryEntryToDomain(h))
		}
	}
	return p
}

func ProfessionalToWire(p professional.Professional) gateway.Row {
	row := gateway.Row{
		"name":            p.Name,
		"email":           p.Email,
		"phone":           p.Phone,
		"document":        p.Document,
		"photo_url":       p.PhotoURL,
		"status":          string(p.Status),
		"hire_date":       wireDate(p.HireDate),
		"notes":           p.Notes,
		"payment_model":   string(p.PaymentModel),
		"commission_rate": p.CommissionRate,
		"fixed_salary":    p.FixedSalary,
	}
	if p.ID != "" {
		row["id"] = p.ID
	}
	return row
}

func ProfessionalPatchToWire(p professional.Patch) gateway.Row {
	row := gateway.Row{}
	set := func(key string, v *string) {
		if v != nil {
			row[key] = *v
		}
	}
	set("name", p.Name)
	set("email", p.Email)
	set("phone", p.Phone)
	set("document", p.Document)
	set("photo_url", p.PhotoURL)
	set("notes", p.Notes)
	if p.Status != nil {
		row["status"] = string(*p.Status)
	}
	if p.HireDate != nil {
		row["hire_date"] = wireDate(*p.HireDate)
	}
	if p.PaymentModel != nil {
		row["payment_model"] = string(*p.PaymentModel)
	}
	if p.CommissionRate != nil {
		row["commission_rate"] = *p.CommissionRate
	}
	if p.FixedSalary != nil {
		row["fixed_salary"] = *p.FixedSalary
	}
	return row
}

func SpecialtyLinksToWire(professionalID string, specialtyIDs []string) []gateway.Row {
	rows := make([]gateway.Row, 0, len(specialtyIDs))
	for _, id := range specialtyIDs {
		rows = append(rows, gateway.Row{"professional_id": professionalID, "specialty_id": id})
	}
	return rows
}

func WorkingDaysToWire(professionalID string, days []string) []gateway.Row {
	rows := make([]gateway.Row, 0, len(days))
	for _, d := range days {
		rows = append(rows, gateway.Row{"professional_id": professionalID, "day": d})
	}
	return rows
}

func HistoryEntryToDomain(row gateway.Row) professional.HistoryEntry {
	return professional.HistoryEntry{
		ID:          str(row, "id"),
		Date:        date(row, "date"),
		Type:        str(row, "type"),
		Description: str(row, "description"),
	}
}

func HistoryEntryToWire(professionalID string, h professional.HistoryEntry) gateway.Row {
	row := gateway.Row{
		"professional_id": professionalID,
		"date":            wireDate(h.Date),
		"type":            h.Type,
		"description":     h.Description,
	}
	if h.ID != "" {
		row["id"] = h.ID
	}
	return row
}

// --------------------------------------------------
// Specialty
// --------------------------------------------------

func SpecialtyToDomain(row gateway.Row) professional.Specialty {
	s := professional.Specialty{
		ID:     str(row, "id"),
		Name:   str(row, "name"),
		Color:  str(row, "color"),
		Active: true,
	}
	if _, ok := row["active"]; ok && row["active"] != nil {
		s.Active = boolean(row, "active")
	}
	return s
}

func SpecialtyToWire(s professional.Specialty) gateway.Row {
	row := gateway.Row{
		"name":   s.Name,
		"color":  s.Color,
		"active": s.Active,
	}
	if s.ID != "" {
		row["id"] = s.ID
	}
	return row
}

func SpecialtyPatchToWire(p professional.SpecialtyPatch) gateway.Row {
	row := gateway.Row{}
	if p.Name != nil {
		row["name"] = *p.Name
	}
	if p.Color != nil {
		row["color"] = *p.Color
	}
	if p.Active != nil {
		row["active"] = *p.Active
	}
	return row
}
