package report

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/client"
	"github.com/BruksfildServices01/salon-manager/internal/domain/professional"
	"github.com/BruksfildServices01/salon-manager/internal/domain/stock"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func appt(pro string, status appointment.Status, date time.Time, items ...appointment.ServiceLineItem) appointment.Appointment {
	a := appointment.Appointment{ProfessionalID: pro, Status: status, Date: date, Services: items}
	a.TotalValue = a.LineItemsTotal()
	return a
}

var (
	corte = appointment.ServiceLineItem{ServiceID: "corte", Name: "Corte", Duration: 30, Price: 80}
	cor   = appointment.ServiceLineItem{ServiceID: "cor", Name: "Coloração", Duration: 60, Price: 150}
)

func TestEmptyInputsNeverProduceNaN(t *testing.T) {
	assert.Zero(t, AverageSatisfaction(nil))
	assert.Zero(t, AverageTicket(nil))
	assert.Zero(t, Percentage(5, 0))
	assert.Empty(t, RevenueByService(nil))
	assert.NotNil(t, RevenueByService(nil))
	assert.Empty(t, TopServices(nil, 3))
	assert.Empty(t, TopClients(nil, 3))
	assert.Empty(t, ClientSegments(nil))
	assert.Empty(t, LowStock(nil))

	d := BuildDashboard(DashboardInput{Now: day})
	assert.Zero(t, d.CompletionRate)
	assert.Zero(t, d.AverageTicket)
	assert.NotNil(t, d.TodayAppointments)
}

func TestProperty_PercentageIsFinite(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("percentage never NaN or Inf", prop.ForAll(
		func(part, total float64) bool {
			p := Percentage(part, total)
			return !math.IsNaN(p) && !math.IsInf(p, 0)
		},
		gen.Float64(), gen.OneGenOf(gen.Const(0.0), gen.Float64()),
	))
	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRevenueCountsCompletedOnly(t *testing.T) {
	appts := []appointment.Appointment{
		appt("p1", appointment.StatusCompleted, day, corte, cor),
		appt("p2", appointment.StatusCompleted, day, corte),
		appt("p2", appointment.StatusCanceled, day, cor),
		appt("p1", appointment.StatusScheduled, day, cor),
	}

	bySvc := RevenueByService(appts)
	require.Len(t, bySvc, 2)
	assert.Equal(t, "corte", bySvc[0].Key)
	assert.Equal(t, 2, bySvc[0].Count)
	assert.Equal(t, 160.0, bySvc[0].Value)
	assert.InDelta(t, 51.61, bySvc[0].Percentage, 0.01)
	assert.Equal(t, "cor", bySvc[1].Key)
	assert.Equal(t, 150.0, bySvc[1].Value)

	pros := []professional.Professional{{ID: "p1", Name: "Carla"}}
	byPro := RevenueByProfessional(appts, pros)
	require.Len(t, byPro, 2)
	assert.Equal(t, "Carla", byPro[0].Label)
	assert.Equal(t, 230.0, byPro[0].Value)
	assert.Equal(t, "p2", byPro[1].Label)

	assert.Equal(t, 310.0, TotalRevenue(appts))
	assert.Equal(t, 155.0, AverageTicket(appts))
}

func TestTopServicesIgnoresCanceled(t *testing.T) {
	appts := []appointment.Appointment{
		appt("p1", appointment.StatusScheduled, day, corte),
		appt("p1", appointment.StatusCompleted, day, corte, cor),
		appt("p1", appointment.StatusCanceled, day, cor, cor),
	}
	top := TopServices(appts, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "corte", top[0].Key)
	assert.Equal(t, 2, top[0].Count)
	assert.InDelta(t, 66.67, top[0].Percentage, 0.01)
}

func TestTopClientsAndSegments(t *testing.T) {
	clients := []client.Client{
		{ID: "a", Name: "Ana", Status: client.StatusVIP, TotalSpent: 900},
		{ID: "b", Name: "Bia", Status: client.StatusActive, TotalSpent: 100},
		{ID: "c", Name: "Cida", Status: client.StatusActive, TotalSpent: 0},
	}
	top := TopClients(clients, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Ana", top[0].Label)
	assert.Equal(t, 90.0, top[0].Percentage)

	seg := ClientSegments(clients)
	require.Len(t, seg, 2)
	assert.Equal(t, "active", seg[0].Key)
	assert.Equal(t, 2, seg[0].Count)
	assert.InDelta(t, 66.67, seg[0].Percentage, 0.01)
}

func TestStockViews(t *testing.T) {
	products := []stock.Product{
		{ID: "a", Quantity: 5, MinQuantity: 2, PurchasePrice: 10, ExpirationDate: day.AddDate(0, 2, 0)},
		{ID: "b", Quantity: 1, MinQuantity: 2, PurchasePrice: 20, ExpirationDate: day.AddDate(0, 0, 10)},
		{ID: "c", Quantity: 2, MinQuantity: 2, ExpirationDate: day.AddDate(0, 0, -1)},
		{ID: "d", Quantity: 0, MinQuantity: 0},
	}

	low := LowStock(products)
	require.Len(t, low, 3)
	assert.Equal(t, []string{"d", "b", "c"}, []string{low[0].ID, low[1].ID, low[2].ID})

	exp := ExpiringProducts(products, day, 30*24*time.Hour)
	require.Len(t, exp, 2)
	assert.Equal(t, "c", exp[0].ID)
	assert.Equal(t, "b", exp[1].ID)

	assert.Equal(t, 70.0, StockValue(products))
}

func TestDashboard(t *testing.T) {
	now := day.Add(10 * time.Hour)
	a1 := appt("p1", appointment.StatusCompleted, day, corte)
	a1.StartTime = "14:00"
	a2 := appt("p1", appointment.StatusConfirmed, day, cor)
	a2.StartTime = "09:00"
	lastMonth := appt("p1", appointment.StatusCompleted, day.AddDate(0, -1, 0), cor)

	d := BuildDashboard(DashboardInput{
		Appointments: []appointment.Appointment{a1, a2, lastMonth},
		Clients:      []client.Client{{Status: client.StatusActive}, {Status: client.StatusInactive}},
		Now:          now,
	})

	require.Len(t, d.TodayAppointments, 2)
	assert.Equal(t, "09:00", d.TodayAppointments[0].StartTime)
	assert.Equal(t, 80.0, d.MonthRevenue)
	assert.Equal(t, 50.0, d.CompletionRate)
	assert.Equal(t, 1, d.ActiveClients)
	assert.Equal(t, 1, d.StatusCounts[appointment.StatusConfirmed])
}

func TestPayoutsFollowPaymentModel(t *testing.T) {
	appts := []appointment.Appointment{
		appt("p1", appointment.StatusCompleted, day, cor),
		appt("p2", appointment.StatusCompleted, day, cor),
		appt("p3", appointment.StatusCompleted, day, cor),
	}
	pros := []professional.Professional{
		{ID: "p1", PaymentModel: professional.PaymentCommission, CommissionRate: 40, FixedSalary: 999},
		{ID: "p2", PaymentModel: professional.PaymentFixed, CommissionRate: 40, FixedSalary: 2000},
		{ID: "p3", PaymentModel: professional.PaymentHybrid, CommissionRate: 10, FixedSalary: 1000},
	}

	byID := map[string]Payout{}
	for _, p := range Payouts(appts, pros) {
		byID[p.ProfessionalID] = p
	}
	assert.Equal(t, 60.0, byID["p1"].Total)
	assert.Equal(t, 2000.0, byID["p2"].Total)
	assert.Equal(t, 1015.0, byID["p3"].Total)
}
