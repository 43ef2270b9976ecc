package dto

import (
	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/client"
	"github.com/BruksfildServices01/salon-manager/internal/domain/professional"
)

type AppointmentRequest struct {
	appointment.Appointment
	Date Date `json:"date"`
}

func (r AppointmentRequest) ToDomain() appointment.Appointment {
	a := r.Appointment
	a.ID = ""
	a.Date = r.Date.Time
	return a
}

type AppointmentPatchRequest struct {
	appointment.Patch
	Date *Date `json:"date,omitempty"`
}

func (r AppointmentPatchRequest) ToDomain() appointment.Patch {
	p := r.Patch
	p.Date = timePtr(r.Date)
	return p
}

type AppointmentStatusRequest struct {
	Status appointment.Status `json:"status" binding:"required"`
}

// AppointmentListDTO is an appointment with the names the agenda shows.
type AppointmentListDTO struct {
	ID               string                        `json:"id"`
	Date             Date                          `json:"date"`
	StartTime        string                        `json:"start_time"`
	EndTime          string                        `json:"end_time"`
	Duration         int                           `json:"duration"`
	Status           appointment.Status            `json:"status"`
	PaymentStatus    appointment.PaymentStatus     `json:"payment_status"`
	TotalValue       float64                       `json:"total_value"`
	Notes            string                        `json:"notes"`
	ClientID         string                        `json:"client_id"`
	ClientName       string                        `json:"client_name"`
	ProfessionalID   string                        `json:"professional_id"`
	ProfessionalName string                        `json:"professional_name"`
	Services         []appointment.ServiceLineItem `json:"services"`
}

func AppointmentList(
	appts []appointment.Appointment,
	clients []client.Client,
	pros []professional.Professional,
) []AppointmentListDTO {
	clientNames := make(map[string]string, len(clients))
	for _, c := range clients {
		clientNames[c.ID] = c.Name
	}
	proNames := make(map[string]string, len(pros))
	for _, p := range pros {
		proNames[p.ID] = p.Name
	}

	out := make([]AppointmentListDTO, 0, len(appts))
	for _, a := range appts {
		out = append(out, AppointmentListDTO{
			ID:               a.ID,
			Date:             Date{a.Date},
			StartTime:        a.StartTime,
			EndTime:          a.EndTime,
			Duration:         a.Duration,
			Status:           a.Status,
			PaymentStatus:    a.PaymentStatus,
			TotalValue:       a.TotalValue,
			Notes:            a.Notes,
			ClientID:         a.ClientID,
			ClientName:       clientNames[a.ClientID],
			ProfessionalID:   a.ProfessionalID,
			ProfessionalName: proNames[a.ProfessionalID],
			Services:         a.Services,
		})
	}
	return out
}
