// Package payment creates hosted checkout links for appointments.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
)

var (
	ErrNothingToCharge = errors.New("payment: appointment has nothing to charge")
	ErrAlreadyPaid     = errors.New("payment: appointment already paid")
)

const currency = "BRL"

type Checkout struct {
	PreferenceID string `json:"preference_id"`
	URL          string `json:"url"`
	SandboxURL   string `json:"sandbox_url,omitempty"`
}

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type MercadoPago struct {
	prefs           preferenceCreator
	notificationURL string
	logger          *zap.Logger
}

func NewMercadoPago(accessToken, notificationURL string, logger *zap.Logger) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		prefs:           preference.NewClient(cfg),
		notificationURL: notificationURL,
		logger:          logger,
	}, nil
}

// CheckoutLink creates a payment preference for the appointment's line items
// (or its total when it has none) referenced by the appointment id.
func (m *MercadoPago) CheckoutLink(ctx context.Context, a appointment.Appointment) (Checkout, error) {
	if a.PaymentStatus == appointment.PaymentPaid {
		return Checkout{}, ErrAlreadyPaid
	}

	items := lineItems(a)
	if len(items) == 0 {
		return Checkout{}, ErrNothingToCharge
	}

	req := preference.Request{
		Items:             items,
		ExternalReference: a.ID,
	}
	if m.notificationURL != "" {
		req.NotificationURL = m.notificationURL
	}

	res, err := m.prefs.Create(ctx, req)
	if err != nil {
		return Checkout{}, fmt.Errorf("mercadopago preference: %w", err)
	}

	m.logger.Info("checkout created",
		zap.String("appointment_id", a.ID),
		zap.String("preference_id", res.ID),
	)
	return Checkout{PreferenceID: res.ID, URL: res.InitPoint, SandboxURL: res.SandboxInitPoint}, nil
}

func lineItems(a appointment.Appointment) []preference.ItemRequest {
	items := make([]preference.ItemRequest, 0, len(a.Services))
	for _, s := range a.Services {
		if s.Price <= 0 {
			continue
		}
		items = append(items, preference.ItemRequest{
			ID:         s.ServiceID,
			Title:      s.Name,
			Quantity:   1,
			UnitPrice:  s.Price,
			CurrencyID: currency,
		})
	}
	if len(items) == 0 && a.TotalValue > 0 {
		items = append(items, preference.ItemRequest{
			ID:         a.ID,
			Title:      "Atendimento",
			Quantity:   1,
			UnitPrice:  a.TotalValue,
			CurrencyID: currency,
		})
	}
	return items
}
