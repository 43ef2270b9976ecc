package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/collection"
	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/mapper"
	"github.com/BruksfildServices01/salon-manager/internal/saga"
)

// AppointmentStore keeps appointments joined with their service line items.
type AppointmentStore struct {
	gw     gateway.Gateway
	logger *zap.Logger
	col    *collection.Collection[appointment.Appointment]

	mu     sync.RWMutex
	filter appointment.Filter
}

func NewAppointmentStore(d Deps) *AppointmentStore {
	s := &AppointmentStore{gw: d.Gateway, logger: d.logger()}
	s.col = collection.New(d.Gateway, s.load, collection.Options{
		Name:     "agendamentos",
		Tables:   []string{TableAppointments, TableAppointmentServices},
		Notifier: d.Notifier,
		Logger:   d.logger(),
	})
	return s
}

func (s *AppointmentStore) Start(ctx context.Context) error { return s.col.Start(ctx) }
func (s *AppointmentStore) Close()                          { s.col.Close() }

func (s *AppointmentStore) Collection() *collection.Collection[appointment.Appointment] {
	return s.col
}

func (s *AppointmentStore) Items() []appointment.Appointment { return s.col.Items() }

// Fetch replaces the active filter and reloads.
func (s *AppointmentStore) Fetch(ctx context.Context, f appointment.Filter) []appointment.Appointment {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
	return s.col.Fetch(ctx)
}

func (s *AppointmentStore) Get(id string) (appointment.Appointment, bool) {
	return s.col.Find(func(a appointment.Appointment) bool { return a.ID == id })
}

func (s *AppointmentStore) load(ctx context.Context) ([]appointment.Appointment, error) {
	s.mu.RLock()
	f := s.filter
	s.mu.RUnlock()

	var filters []gateway.Filter
	if !f.From.IsZero() {
		filters = append(filters, gateway.Gte("date", f.From.Format("2006-01-02")))
	}
	if !f.To.IsZero() {
		filters = append(filters, gateway.Lte("date", f.To.Format("2006-01-02")))
	}
	if f.ProfessionalID != "" {
		filters = append(filters, gateway.Eq("professional_id", f.ProfessionalID))
	}
	if f.ClientID != "" {
		filters = append(filters, gateway.Eq("client_id", f.ClientID))
	}
	if f.Status != "" {
		filters = append(filters, gateway.Eq("status", string(f.Status)))
	}

	rows, err := s.gw.Select(ctx, TableAppointments,
		gateway.Where(filters...).OrderBy("date", false).OrderBy("start_time", false))
	if err != nil {
		return nil, err
	}

	var byAppointment map[string][]gateway.Row
	if len(rows) > 0 {
		services, err := s.gw.Select(ctx, TableAppointmentServices,
			gateway.Where(gateway.In("appointment_id", ids(rows))).OrderBy("position", false))
		if err != nil {
			return nil, err
		}
		byAppointment = mapper.GroupServices(services)
	}

	out := make([]appointment.Appointment, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.AppointmentToDomain(r, byAppointment[rowID(r)]))
	}
	return out, nil
}

// Load reads one appointment straight from the gateway, bypassing the
// snapshot.
func (s *AppointmentStore) Load(ctx context.Context, id string) (appointment.Appointment, error) {
	row, err := selectOne(ctx, s.gw, TableAppointments, id)
	if err != nil {
		return appointment.Appointment{}, err
	}
	services, err := s.gw.Select(ctx, TableAppointmentServices,
		gateway.Where(gateway.Eq("appointment_id", id)).OrderBy("position", false))
	if err != nil {
		return appointment.Appointment{}, err
	}
	return mapper.AppointmentToDomain(row, services), nil
}

// ==================================================
// Mutations
// ==================================================

// Create stores the appointment and its line items and returns the new id.
// Duration is stored as given; it is never derived from the line items.
func (s *AppointmentStore) Create(ctx context.Context, a appointment.Appointment) (string, error) {
	if a.Status == "" {
		a.Status = appointment.InitialStatus()
	}
	if a.PaymentStatus == "" {
		a.PaymentStatus = appointment.PaymentPending
	}

	var id string
	err := s.col.Mutate(ctx, collection.Action{
		Success: "Agendamento criado",
		Failure: "Erro ao criar agendamento",
	}, func(ctx context.Context) error {
		sg := saga.New("create appointment", s.logger)

		// --------------------------------------------------
		// 1️⃣ Agendamento
		// --------------------------------------------------
		var stored gateway.Row
		err := sg.Do(ctx, "insert "+TableAppointments,
			func(ctx context.Context) error {
				r, err := s.gw.Insert(ctx, TableAppointments, mapper.AppointmentToWire(a))
				stored = r
				return err
			},
			func(ctx context.Context) error {
				// line items may be partially written
				if err := s.gw.Delete(ctx, TableAppointmentServices, gateway.Eq("appointment_id", rowID(stored))); err != nil {
					return err
				}
				return s.gw.Delete(ctx, TableAppointments, gateway.ByID(rowID(stored)))
			},
		)
		if err != nil {
			return err
		}
		id = rowID(stored)

		// --------------------------------------------------
		// 2️⃣ Serviços
		// --------------------------------------------------
		for _, row := range mapper.ServiceLineItemsToWire(id, a.Services) {
			if _, err := insertStep(ctx, sg, s.gw, TableAppointmentServices, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update sends only the fields present in p. A non-nil Services deletes every
// line item of the appointment and inserts the new set.
func (s *AppointmentStore) Update(ctx context.Context, id string, p appointment.Patch) error {
	return s.col.Mutate(ctx, collection.Action{
		Success: "Agendamento atualizado",
		Failure: "Erro ao atualizar agendamento",
	}, func(ctx context.Context) error {
		sg := saga.New("update appointment", s.logger)

		if row := mapper.AppointmentPatchToWire(p); len(row) > 0 {
			if err := updateStep(ctx, sg, s.gw, TableAppointments, id, row); err != nil {
				return err
			}
		}

		if p.Services != nil {
			if err := deleteStep(ctx, sg, s.gw, TableAppointmentServices, gateway.Eq("appointment_id", id)); err != nil {
				return err
			}
			for _, row := range mapper.ServiceLineItemsToWire(id, *p.Services) {
				if _, err := insertStep(ctx, sg, s.gw, TableAppointmentServices, row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *AppointmentStore) UpdateStatus(ctx context.Context, id string, status appointment.Status) error {
	return s.Update(ctx, id, appointment.Patch{Status: &status})
}

// Delete removes the line items, then the appointment.
func (s *AppointmentStore) Delete(ctx context.Context, id string) error {
	return s.col.Mutate(ctx, collection.Action{
		Success: "Agendamento excluído",
		Failure: "Erro ao excluir agendamento",
	}, func(ctx context.Context) error {
		sg := saga.New("delete appointment", s.logger)
		if err := deleteStep(ctx, sg, s.gw, TableAppointmentServices, gateway.Eq("appointment_id", id)); err != nil {
			return err
		}
		return deleteStep(ctx, sg, s.gw, TableAppointments, gateway.ByID(id))
	})
}
