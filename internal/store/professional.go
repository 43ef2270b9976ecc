package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/collection"
	"github.com/BruksfildServices01/salon-manager/internal/domain/professional"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/mapper"
	"github.com/BruksfildServices01/salon-manager/internal/saga"
)

// ProfessionalStore keeps professionals with their specialties, working days
// and history.
type ProfessionalStore struct {
	gw     gateway.Gateway
	logger *zap.Logger
	col    *collection.Collection[professional.Professional]
}

func NewProfessionalStore(d Deps) *ProfessionalStore {
	s := &ProfessionalStore{gw: d.Gateway, logger: d.logger()}
	s.col = collection.New(d.Gateway, s.load, collection.Options{
		Name: "profissionais",
		Tables: []string{
			TableProfessionals,
			TableProfessionalLinks,
			TableProfessionalDays,
			TableProfessionalHistory,
			TableSpecialties,
		},
		Notifier: d.Notifier,
		Logger:   d.logger(),
	})
	return s
}

func (s *ProfessionalStore) Start(ctx context.Context) error { return s.col.Start(ctx) }
func (s *ProfessionalStore) Close()                          { s.col.Close() }

func (s *ProfessionalStore) Collection() *collection.Collection[professional.Professional] {
	return s.col
}

func (s *ProfessionalStore) Items() []professional.Professional { return s.col.Items() }

func (s *ProfessionalStore) Fetch(ctx context.Context) []professional.Professional {
	return s.col.Fetch(ctx)
}

func (s *ProfessionalStore) Get(id string) (professional.Professional, bool) {
	return s.col.Find(func(p professional.Professional) bool { return p.ID == id })
}

func (s *ProfessionalStore) load(ctx context.Context) ([]professional.Professional, error) {
	rows, err := s.gw.Select(ctx, TableProfessionals, gateway.Query{}.OrderBy("name", false))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []professional.Professional{}, nil
	}

	owners := gateway.Where(gateway.In("professional_id", ids(rows)))

	var rel mapper.ProfessionalRelations
	if rel.Links, err = s.gw.Select(ctx, TableProfessionalLinks, owners); err != nil {
		return nil, err
	}
	if rel.Specialties, err = s.gw.Select(ctx, TableSpecialties, gateway.Query{}); err != nil {
		return nil, err
	}
	if rel.WorkingDays, err = s.gw.Select(ctx, TableProfessionalDays, owners); err != nil {
		return nil, err
	}
	if rel.History, err = s.gw.Select(ctx, TableProfessionalHistory, owners.OrderBy("date", true)); err != nil {
		return nil, err
	}

	out := make([]professional.Professional, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.ProfessionalToDomain(r, rel))
	}
	return out, nil
}

// ==================================================
// Mutations
// ==================================================

// Create stores the professional with its links and history. Rates the
// payment model does not use are zeroed first.
func (s *ProfessionalStore) Create(ctx context.Context, p professional.Professional) (string, error) {
	if p.Status == "" {
		p.Status = professional.StatusActive
	}
	if p.PaymentModel == "" {
		p.PaymentModel = professional.PaymentCommission
	}
	p.NormalizePayment()

	var id string
	err := s.col.Mutate(ctx, collection.Action{
		Success: "Profissional cadastrado",
		Failure: "Erro ao cadastrar profissional",
	}, func(ctx context.Context) error {
		sg := saga.New("create professional", s.logger)

		stored, err := insertStep(ctx, sg, s.gw, TableProfessionals, mapper.ProfessionalToWire(p))
		if err != nil {
			return err
		}
		id = rowID(stored)

		for _, row := range mapper.SpecialtyLinksToWire(id, p.SpecialtyIDs()) {
			if _, err := insertStep(ctx, sg, s.gw, TableProfessionalLinks, row); err != nil {
				return err
			}
		}
		for _, row := range mapper.WorkingDaysToWire(id, p.WorkingDays) {
			if _, err := insertStep(ctx, sg, s.gw, TableProfessionalDays, row); err != nil {
				return err
			}
		}
		for _, h := range p.History {
			if _, err := insertStep(ctx, sg, s.gw, TableProfessionalHistory, mapper.HistoryEntryToWire(id, h)); err != nil {
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

// Update sends only the fields present in p. When the payment model or a rate
// changes, the rate the resulting model does not use is written as zero.
// Non-nil SpecialtyIDs or WorkingDays replace the whole link set.
func (s *ProfessionalStore) Update(ctx context.Context, id string, p professional.Patch) error {
	return s.col.Mutate(ctx, collection.Action{
		Success: "Profissional atualizado",
		Failure: "Erro ao atualizar profissional",
	}, func(ctx context.Context) error {
		sg := saga.New("update professional", s.logger)

		row := mapper.ProfessionalPatchToWire(p)
		if p.PaymentModel != nil || p.CommissionRate != nil || p.FixedSalary != nil {
			if err := s.normalizeRates(ctx, id, p, row); err != nil {
				return err
			}
		}
		if len(row) > 0 {
			if err := updateStep(ctx, sg, s.gw, TableProfessionals, id, row); err != nil {
				return err
			}
		}

		if p.SpecialtyIDs != nil {
			if err := s.replace(ctx, sg, TableProfessionalLinks, id, mapper.SpecialtyLinksToWire(id, *p.SpecialtyIDs)); err != nil {
				return err
			}
		}
		if p.WorkingDays != nil {
			if err := s.replace(ctx, sg, TableProfessionalDays, id, mapper.WorkingDaysToWire(id, *p.WorkingDays)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *ProfessionalStore) normalizeRates(ctx context.Context, id string, p professional.Patch, row gateway.Row) error {
	current, err := selectOne(ctx, s.gw, TableProfessionals, id)
	if err != nil {
		return err
	}
	existing := mapper.ProfessionalToDomain(current, mapper.ProfessionalRelations{})

	model := existing.PaymentModel
	if p.PaymentModel != nil {
		model = *p.PaymentModel
	}
	commission, salary := existing.CommissionRate, existing.FixedSalary
	if p.CommissionRate != nil {
		commission = *p.CommissionRate
	}
	if p.FixedSalary != nil {
		salary = *p.FixedSalary
	}

	commission, salary = professional.NormalizeRates(model, commission, salary)
	row["commission_rate"] = commission
	row["fixed_salary"] = salary
	return nil
}

func (s *ProfessionalStore) replace(ctx context.Context, sg *saga.Saga, table, id string, rows []gateway.Row) error {
	if err := deleteStep(ctx, sg, s.gw, table, gateway.Eq("professional_id", id)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := insertStep(ctx, sg, s.gw, table, row); err != nil {
			return err
		}
	}
	return nil
}

// AddHistoryEntry appends to the professional's history. Entries are never
// edited.
func (s *ProfessionalStore) AddHistoryEntry(ctx context.Context, id string, h professional.HistoryEntry) error {
	return s.col.Mutate(ctx, collection.Action{
		Success: "Histórico registrado",
		Failure: "Erro ao registrar histórico",
	}, func(ctx context.Context) error {
		_, err := s.gw.Insert(ctx, TableProfessionalHistory, mapper.HistoryEntryToWire(id, h))
		return err
	})
}

// Delete removes specialty links, working days and history, in that order,
// before the professional row.
func (s *ProfessionalStore) Delete(ctx context.Context, id string) error {
	return s.col.Mutate(ctx, collection.Action{
		Success: "Profissional removido",
		Failure: "Erro ao remover profissional",
	}, func(ctx context.Context) error {
		sg := saga.New("delete professional", s.logger)
		owner := gateway.Eq("professional_id", id)

		for _, table := range []string{TableProfessionalLinks, TableProfessionalDays, TableProfessionalHistory} {
			if err := deleteStep(ctx, sg, s.gw, table, owner); err != nil {
				return err
			}
		}
		return deleteStep(ctx, sg, s.gw, TableProfessionals, gateway.ByID(id))
	})
}

// ==================================================
// Specialties
// ==================================================

type SpecialtyStore struct {
	gw     gateway.Gateway
	logger *zap.Logger
	col    *collection.Collection[professional.Specialty]
}

func NewSpecialtyStore(d Deps) *SpecialtyStore {
	s := &SpecialtyStore{gw: d.Gateway, logger: d.logger()}
	s.col = collection.New(d.Gateway, s.load, collection.Options{
		Name:     "especialidades",
		Tables:   []string{TableSpecialties},
		Notifier: d.Notifier,
		Logger:   d.logger(),
	})
	return s
}

func (s *SpecialtyStore) Start(ctx context.Context) error { return s.col.Start(ctx) }
func (s *SpecialtyStore) Close()                          { s.col.Close() }

func (s *SpecialtyStore) Collection() *collection.Collection[professional.Specialty] {
	return s.col
}

func (s *SpecialtyStore) Items() []professional.Specialty { return s.col.Items() }

func (s *SpecialtyStore) Fetch(ctx context.Context) []professional.Specialty {
	return s.col.Fetch(ctx)
}

func (s *SpecialtyStore) load(ctx context.Context) ([]professional.Specialty, error) {
	rows, err := s.gw.Select(ctx, TableSpecialties, gateway.Query{}.OrderBy("name", false))
	if err != nil {
		return nil, err
	}
	out := make([]professional.Specialty, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.SpecialtyToDomain(r))
	}
	return out, nil
}

func (s *SpecialtyStore) Create(ctx context.Context, sp professional.Specialty) (string, error) {
	var id string
	err := s.col.Mutate(ctx, collection.Action{
		Success: "Especialidade criada",
		Failure: "Erro ao criar especialidade",
	}, func(ctx context.Context) error {
		stored, err := s.gw.Insert(ctx, TableSpecialties, mapper.SpecialtyToWire(sp))
		if err != nil {
			return err
		}
		id = rowID(stored)
		return nil
	})
	return id, err
}

func (s *SpecialtyStore) Update(ctx context.Context, id string, p professional.SpecialtyPatch) error {
	return s.col.Mutate(ctx, collection.Action{
		Success: "Especialidade atualizada",
		Failure: "Erro ao atualizar especialidade",
	}, func(ctx context.Context) error {
		row := mapper.SpecialtyPatchToWire(p)
		if len(row) == 0 {
			return nil
		}
		return s.gw.Update(ctx, TableSpecialties, id, row)
	})
}

// Delete unlinks the specialty from every professional, then removes it.
func (s *SpecialtyStore) Delete(ctx context.Context, id string) error {
	return s.col.Mutate(ctx, collection.Action{
		Success: "Especialidade removida",
		Failure: "Erro ao remover especialidade",
	}, func(ctx context.Context) error {
		sg := saga.New("delete specialty", s.logger)
		if err := deleteStep(ctx, sg, s.gw, TableProfessionalLinks, gateway.Eq("specialty_id", id)); err != nil {
			return err
		}
		return deleteStep(ctx, sg, s.gw, TableSpecialties, gateway.ByID(id))
	})
}
