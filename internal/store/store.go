// Package store holds one synchronized collection per entity and the write
// sequences that keep the related gateway tables consistent.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/lock"
	"github.com/BruksfildServices01/salon-manager/internal/notify"
	"github.com/BruksfildServices01/salon-manager/internal/saga"
)

// ==================================================
// Tables
// ==================================================

const (
	TableAppointments        = "appointments"
	TableAppointmentServices = "appointment_services"
	TableProfessionals       = "professionals"
	TableProfessionalLinks   = "professional_specialties"
	TableProfessionalDays    = "professional_working_days"
	TableProfessionalHistory = "professional_history"
	TableSpecialties         = "specialties"
	TableProducts            = "products"
	TableStockMovements      = "stock_movements"
	TableSuppliers           = "suppliers"
	TableClients             = "clients"
	TableBusinessSettings    = "business_settings"
	TableUsers               = "users"
)

var (
	ErrSupplierInUse = errors.New("supplier has linked products")
	ErrNotFound      = gateway.ErrNotFound
)

// Deps are shared by every store. The gateway is injected so tests can
// substitute doubles. Locker guards read-modify-write sequences on one row;
// nil means an in-process lock.
type Deps struct {
	Gateway  gateway.Gateway
	Notifier notify.Notifier
	Logger   *zap.Logger
	Locker   lock.Locker
}

func (d Deps) locker() lock.Locker {
	if d.Locker == nil {
		return lock.NewLocal()
	}
	return d.Locker
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// ==================================================
// Saga steps over the gateway
// ==================================================

// insertStep inserts row and deletes it again on compensation.
func insertStep(ctx context.Context, sg *saga.Saga, gw gateway.Gateway, table string, row gateway.Row) (gateway.Row, error) {
	var stored gateway.Row
	err := sg.Do(ctx, "insert "+table,
		func(ctx context.Context) error {
			r, err := gw.Insert(ctx, table, row)
			if err != nil {
				return err
			}
			stored = r
			return nil
		},
		func(ctx context.Context) error {
			return gw.Delete(ctx, table, gateway.ByID(rowID(stored)))
		},
	)
	return stored, err
}

// updateStep applies patch to one row and restores the patched columns on
// compensation.
func updateStep(ctx context.Context, sg *saga.Saga, gw gateway.Gateway, table, id string, patch gateway.Row) error {
	previous := gateway.Row{}
	return sg.Do(ctx, "update "+table,
		func(ctx context.Context) error {
			current, err := selectOne(ctx, gw, table, id)
			if err != nil {
				return err
			}
			for k := range patch {
				previous[k] = current[k]
			}
			return gw.Update(ctx, table, id, patch)
		},
		func(ctx context.Context) error {
			return gw.Update(ctx, table, id, previous)
		},
	)
}

// deleteStep removes every row matching filters and reinserts them on
// compensation.
func deleteStep(ctx context.Context, sg *saga.Saga, gw gateway.Gateway, table string, filters ...gateway.Filter) error {
	var removed []gateway.Row
	return sg.Do(ctx, "delete "+table,
		func(ctx context.Context) error {
			rows, err := gw.Select(ctx, table, gateway.Where(filters...))
			if err != nil {
				return err
			}
			removed = rows
			return gw.Delete(ctx, table, filters...)
		},
		func(ctx context.Context) error {
			var errs []error
			for _, r := range removed {
				if _, err := gw.Insert(ctx, table, r); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	)
}

func selectOne(ctx context.Context, gw gateway.Gateway, table, id string) (gateway.Row, error) {
	rows, err := gw.Select(ctx, table, gateway.Where(gateway.ByID(id)))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %s: %w", table, id, gateway.ErrNotFound)
	}
	return rows[0], nil
}

func rowID(r gateway.Row) string {
	id, _ := r["id"].(string)
	return id
}

func ids(rows []gateway.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowID(r))
	}
	return out
}

func ptr[T any](v T) *T { return &v }
