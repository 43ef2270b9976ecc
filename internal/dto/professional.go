package dto

import (
	"github.com/BruksfildServices01/salon-manager/internal/domain/professional"
)

type ProfessionalRequest struct {
	professional.Professional
	HireDate     Date     `json:"hire_date"`
	SpecialtyIDs []string `json:"specialty_ids"`
}

// ToDomain resolves specialty ids to bare references; the store only
// writes the links.
func (r ProfessionalRequest) ToDomain() professional.Professional {
	p := r.Professional
	p.ID = ""
	p.HireDate = r.HireDate.Time
	p.History = nil
	if r.SpecialtyIDs != nil {
		p.Specialties = make([]professional.Specialty, 0, len(r.SpecialtyIDs))
		for _, id := range r.SpecialtyIDs {
			p.Specialties = append(p.Specialties, professional.Specialty{ID: id})
		}
	}
	return p
}

type ProfessionalPatchRequest struct {
	professional.Patch
	HireDate *Date `json:"hire_date,omitempty"`
}

func (r ProfessionalPatchRequest) ToDomain() professional.Patch {
	p := r.Patch
	p.HireDate = timePtr(r.HireDate)
	return p
}

type HistoryEntryRequest struct {
	Date        Date   `json:"date"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
}

func (r HistoryEntryRequest) ToDomain() professional.HistoryEntry {
	return professional.HistoryEntry{Date: r.Date.Time, Type: r.Type, Description: r.Description}
}
