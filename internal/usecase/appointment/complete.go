package appointment

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/lock"
	"github.com/BruksfildServices01/salon-manager/internal/saga"
)

// CompleteAppointment marks the appointment completed and credits the visit
// to its client. Either both writes land or neither does. Completions of the
// same appointment are serialised and read the stored status, so a visit is
// credited once.
type CompleteAppointment struct {
	appointments Appointments
	clients      Clients
	locker       lock.Locker
	logger       *zap.Logger
}

func NewCompleteAppointment(
	appointments Appointments,
	clients Clients,
	locker lock.Locker,
	logger *zap.Logger,
) *CompleteAppointment {
	if locker == nil {
		locker = lock.NewLocal()
	}
	return &CompleteAppointment{
		appointments: appointments,
		clients:      clients,
		locker:       locker,
		logger:       logger,
	}
}

func (uc *CompleteAppointment) Execute(ctx context.Context, id string) error {
	release, err := uc.locker.Acquire(ctx, "appointment:"+id)
	if err != nil {
		return err
	}
	defer release()

	// --------------------------------------------------
	// 1️⃣ Estado atual (sempre do gateway)
	// --------------------------------------------------
	ap, err := uc.appointments.Load(ctx, id)
	if errors.Is(err, gateway.ErrNotFound) {
		return httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return err
	}
	switch ap.Status {
	case domain.StatusCompleted:
		return httperr.ErrBusiness("appointment_already_completed")
	case domain.StatusCanceled:
		return httperr.ErrBusiness("appointment_canceled")
	}

	// --------------------------------------------------
	// 2️⃣ Status + crédito do cliente
	// --------------------------------------------------
	sg := saga.New("complete appointment", uc.logger)

	err = sg.Do(ctx, "status",
		func(ctx context.Context) error {
			return uc.appointments.UpdateStatus(ctx, id, domain.StatusCompleted)
		},
		func(ctx context.Context) error {
			return uc.appointments.UpdateStatus(ctx, id, ap.Status)
		},
	)
	if err != nil {
		return err
	}

	if _, ok := uc.clients.Get(ap.ClientID); !ok {
		return nil
	}

	return sg.Do(ctx, "client stats",
		func(ctx context.Context) error {
			return uc.clients.Credit(ctx, ap.ClientID, 1, ap.TotalValue)
		},
		func(ctx context.Context) error {
			return uc.clients.Credit(ctx, ap.ClientID, -1, -ap.TotalValue)
		},
	)
}
