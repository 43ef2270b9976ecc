package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/professional"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
)

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	appointments  Appointments
	clients       Clients
	professionals Professionals
}

func NewCreateAppointment(
	appointments Appointments,
	clients Clients,
	professionals Professionals,
) *CreateAppointment {
	return &CreateAppointment{
		appointments:  appointments,
		clients:       clients,
		professionals: professionals,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(ctx context.Context, a domain.Appointment) (string, error) {

	// --------------------------------------------------
	// 1️⃣ Data / horário
	// --------------------------------------------------
	if a.Date.IsZero() {
		return "", httperr.ErrBusiness("invalid_date")
	}
	if a.Duration <= 0 {
		a.Duration = a.LineItemsDuration()
	}
	start, end, err := a.Span()
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimeRange) {
			return "", httperr.ErrBusiness("invalid_time_range")
		}
		return "", httperr.ErrBusiness("invalid_time")
	}
	if a.Duration <= 0 {
		a.Duration = end - start
	}
	if a.Status != "" && !a.Status.Valid() {
		return "", httperr.ErrBusiness("invalid_status")
	}
	if a.PaymentStatus != "" && !a.PaymentStatus.Valid() {
		return "", httperr.ErrBusiness("invalid_payment_status")
	}

	// --------------------------------------------------
	// 2️⃣ Profissional
	// --------------------------------------------------
	if a.ProfessionalID != "" {
		p, ok := uc.professionals.Get(a.ProfessionalID)
		if !ok {
			return "", httperr.ErrBusiness("professional_not_found")
		}
		if p.Status == professional.StatusInactive {
			return "", httperr.ErrBusiness("professional_inactive")
		}
	}

	// --------------------------------------------------
	// 3️⃣ Cliente
	// --------------------------------------------------
	if a.ClientID != "" {
		if _, ok := uc.clients.Get(a.ClientID); !ok {
			return "", httperr.ErrBusiness("client_not_found")
		}
	}

	// --------------------------------------------------
	// 4️⃣ Valor
	// --------------------------------------------------
	if a.TotalValue <= 0 {
		a.TotalValue = a.LineItemsTotal()
	}

	// --------------------------------------------------
	// 5️⃣ Conflito de horário
	// --------------------------------------------------
	if a.Status == "" || a.Status.Active() {
		if _, busy := domain.FindConflict(uc.appointments.Items(), a); busy {
			return "", httperr.ErrBusiness("time_slot_unavailable")
		}
	}

	// --------------------------------------------------
	// 6️⃣ Criação (status centralizado no store)
	// --------------------------------------------------
	return uc.appointments.Create(ctx, a)
}
