package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
)

type CancelAppointment struct {
	appointments Appointments
}

func NewCancelAppointment(appointments Appointments) *CancelAppointment {
	return &CancelAppointment{appointments: appointments}
}

func (uc *CancelAppointment) Execute(ctx context.Context, id string) error {
	ap, ok := uc.appointments.Get(id)
	if !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}

	switch ap.Status {
	case domain.StatusCanceled:
		return httperr.ErrBusiness("appointment_already_canceled")
	case domain.StatusCompleted:
		return httperr.ErrBusiness("appointment_already_completed")
	}

	return uc.appointments.UpdateStatus(ctx, id, domain.StatusCanceled)
}
