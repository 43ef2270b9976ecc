package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
)

type fakePrefs struct {
	got preference.Request
	err error
}

func (f *fakePrefs) Create(_ context.Context, req preference.Request) (*preference.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &preference.Response{ID: "pref-1", InitPoint: "https://mp/checkout/pref-1"}, nil
}

func TestCheckoutUsesLineItems(t *testing.T) {
	f := &fakePrefs{}
	mp := &MercadoPago{prefs: f, logger: zap.NewNop()}

	c, err := mp.CheckoutLink(context.Background(), appointment.Appointment{
		ID: "ap-1",
		Services: []appointment.ServiceLineItem{
			{ServiceID: "corte", Name: "Corte", Price: 80},
			{ServiceID: "cortesia", Name: "Café", Price: 0},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, Checkout{PreferenceID: "pref-1", URL: "https://mp/checkout/pref-1"}, c)
	assert.Equal(t, "ap-1", f.got.ExternalReference)
	require.Len(t, f.got.Items, 1)
	assert.Equal(t, "Corte", f.got.Items[0].Title)
	assert.Equal(t, 80.0, f.got.Items[0].UnitPrice)
	assert.Equal(t, "BRL", f.got.Items[0].CurrencyID)
}

func TestCheckoutFallsBackToTotal(t *testing.T) {
	f := &fakePrefs{}
	mp := &MercadoPago{prefs: f, logger: zap.NewNop()}

	_, err := mp.CheckoutLink(context.Background(), appointment.Appointment{ID: "ap-2", TotalValue: 120})
	require.NoError(t, err)
	require.Len(t, f.got.Items, 1)
	assert.Equal(t, 120.0, f.got.Items[0].UnitPrice)
}

func TestCheckoutRejections(t *testing.T) {
	mp := &MercadoPago{prefs: &fakePrefs{}, logger: zap.NewNop()}
	ctx := context.Background()

	_, err := mp.CheckoutLink(ctx, appointment.Appointment{ID: "a"})
	assert.ErrorIs(t, err, ErrNothingToCharge)

	_, err = mp.CheckoutLink(ctx, appointment.Appointment{ID: "a", TotalValue: 10, PaymentStatus: appointment.PaymentPaid})
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	boom := errors.New("gateway down")
	mp.prefs = &fakePrefs{err: boom}
	_, err = mp.CheckoutLink(ctx, appointment.Appointment{ID: "a", TotalValue: 10})
	assert.ErrorIs(t, err, boom)
}
