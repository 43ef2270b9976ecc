package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/collection"
	"github.com/BruksfildServices01/salon-manager/internal/domain/business"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/mapper"
)

// SettingsStore holds the business profile. The table is expected to carry a
// single row; the first one is used.
type SettingsStore struct {
	gw     gateway.Gateway
	logger *zap.Logger
	col    *collection.Collection[business.Settings]
}

func NewSettingsStore(d Deps) *SettingsStore {
	s := &SettingsStore{gw: d.Gateway, logger: d.logger()}
	s.col = collection.New(d.Gateway, s.load, collection.Options{
		Name:     "configurações",
		Tables:   []string{TableBusinessSettings},
		Notifier: d.Notifier,
		Logger:   d.logger(),
	})
	return s
}

func (s *SettingsStore) Start(ctx context.Context) error { return s.col.Start(ctx) }
func (s *SettingsStore) Close()                          { s.col.Close() }

func (s *SettingsStore) load(ctx context.Context) ([]business.Settings, error) {
	rows, err := s.gw.Select(ctx, TableBusinessSettings, gateway.Query{}.OrderBy("created_at", false))
	if err != nil {
		return nil, err
	}
	out := make([]business.Settings, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.SettingsToDomain(r))
	}
	return out, nil
}

// Current returns the business profile, or a zero value before one exists.
func (s *SettingsStore) Current() business.Settings {
	items := s.col.Items()
	if len(items) == 0 {
		return business.Settings{PaymentMethods: []string{}}
	}
	return items[0]
}

// Update patches the profile, creating it on first use.
func (s *SettingsStore) Update(ctx context.Context, p business.Patch) error {
	return s.col.Mutate(ctx, collection.Action{
		Success: "Configurações salvas",
		Failure: "Erro ao salvar configurações",
	}, func(ctx context.Context) error {
		row := mapper.SettingsPatchToWire(p)
		if len(row) == 0 {
			return nil
		}

		rows, err := s.gw.Select(ctx, TableBusinessSettings, gateway.Query{}.OrderBy("created_at", false))
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			_, err := s.gw.Insert(ctx, TableBusinessSettings, row)
			return err
		}
		return s.gw.Update(ctx, TableBusinessSettings, rowID(rows[0]), row)
	})
}

func (s *SettingsStore) SetLogo(ctx context.Context, url string) error {
	return s.Update(ctx, business.Patch{LogoURL: &url})
}
