package store

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/salon-manager/internal/lock"
)

// Set bundles the stores one service instance owns.
type Set struct {
	Appointments  *AppointmentStore
	Professionals *ProfessionalStore
	Specialties   *SpecialtyStore
	Stock         *StockStore
	Suppliers     *SupplierStore
	Clients       *ClientStore
	Settings      *SettingsStore

	// Locker is shared with the use cases that lock across stores.
	Locker lock.Locker
}

func NewSet(d Deps) *Set {
	d.Locker = d.locker()
	return &Set{
		Locker:        d.Locker,
		Appointments:  NewAppointmentStore(d),
		Professionals: NewProfessionalStore(d),
		Specialties:   NewSpecialtyStore(d),
		Stock:         NewStockStore(d),
		Suppliers:     NewSupplierStore(d),
		Clients:       NewClientStore(d),
		Settings:      NewSettingsStore(d),
	}
}

type starter interface {
	Start(ctx context.Context) error
	Close()
}

func (s *Set) all() []starter {
	return []starter{
		s.Appointments,
		s.Professionals,
		s.Specialties,
		s.Stock,
		s.Suppliers,
		s.Clients,
		s.Settings,
	}
}

// Start subscribes every store and loads its first snapshot. On failure the
// stores already started are closed.
func (s *Set) Start(ctx context.Context) error {
	started := make([]starter, 0, len(s.all()))
	for _, st := range s.all() {
		if err := st.Start(ctx); err != nil {
			for _, prev := range started {
				prev.Close()
			}
			return fmt.Errorf("start stores: %w", err)
		}
		started = append(started, st)
	}
	return nil
}

func (s *Set) Close() {
	for _, st := range s.all() {
		st.Close()
	}
}
