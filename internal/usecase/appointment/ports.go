package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/client"
	"github.com/BruksfildServices01/salon-manager/internal/domain/professional"
)

// Appointments is the part of store.AppointmentStore the use cases need.
type Appointments interface {
	Items() []appointment.Appointment
	Get(id string) (appointment.Appointment, bool)
	Load(ctx context.Context, id string) (appointment.Appointment, error)
	Create(ctx context.Context, a appointment.Appointment) (string, error)
	UpdateStatus(ctx context.Context, id string, status appointment.Status) error
}

type Clients interface {
	Get(id string) (client.Client, bool)
	Update(ctx context.Context, id string, p client.Patch) error
	Credit(ctx context.Context, id string, visits int, spent float64) error
}

type Professionals interface {
	Get(id string) (professional.Professional, bool)
}
