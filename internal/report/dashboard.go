package report

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/client"
	"github.com/BruksfildServices01/salon-manager/internal/domain/professional"
	"github.com/BruksfildServices01/salon-manager/internal/domain/stock"
)

const expiryWindow = 30 * 24 * time.Hour

type DashboardInput struct {
	Appointments  []appointment.Appointment
	Clients       []client.Client
	Products      []stock.Product
	Professionals []professional.Professional
	// Now is the business-local current time.
	Now time.Time
}

type Dashboard struct {
	TodayAppointments     []appointment.Appointment  `json:"today_appointments"`
	MonthRevenue          float64                    `json:"month_revenue"`
	AverageTicket         float64                    `json:"average_ticket"`
	CompletionRate        float64                    `json:"completion_rate"`
	ActiveClients         int                        `json:"active_clients"`
	StatusCounts          map[appointment.Status]int `json:"status_counts"`
	TopServices           []Entry                    `json:"top_services"`
	RevenueByProfessional []Entry                    `json:"revenue_by_professional"`
	ClientSegments        []Entry                    `json:"client_segments"`
	LowStock              []stock.Product            `json:"low_stock"`
	Expiring              []stock.Product            `json:"expiring"`
	StockValue            float64                    `json:"stock_value"`
}

func BuildDashboard(in DashboardInput) Dashboard {
	y, m, d := in.Now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)

	todays := make([]appointment.Appointment, 0)
	month := make([]appointment.Appointment, 0)
	for _, a := range in.Appointments {
		if a.Date.Equal(today) {
			todays = append(todays, a)
		}
		if !a.Date.Before(monthStart) && a.Date.Before(monthStart.AddDate(0, 1, 0)) {
			month = append(month, a)
		}
	}
	sort.SliceStable(todays, func(i, j int) bool { return todays[i].StartTime < todays[j].StartTime })

	active := 0
	for _, c := range in.Clients {
		if c.Status != client.StatusInactive {
			active++
		}
	}

	counts := CountByStatus(month)
	completed := counts[appointment.StatusCompleted]

	return Dashboard{
		TodayAppointments:     todays,
		MonthRevenue:          TotalRevenue(month),
		AverageTicket:         AverageTicket(month),
		CompletionRate:        Percentage(float64(completed), float64(len(month))),
		ActiveClients:         active,
		StatusCounts:          counts,
		TopServices:           TopServices(month, 5),
		RevenueByProfessional: RevenueByProfessional(month, in.Professionals),
		ClientSegments:        ClientSegments(in.Clients),
		LowStock:              LowStock(in.Products),
		Expiring:              ExpiringProducts(in.Products, today, expiryWindow),
		StockValue:            StockValue(in.Products),
	}
}

// ==================================================
// Payouts
// ==================================================

type Payout struct {
	ProfessionalID string  `json:"professional_id"`
	Name           string  `json:"name"`
	Revenue        float64 `json:"revenue"`
	Commission     float64 `json:"commission"`
	FixedSalary    float64 `json:"fixed_salary"`
	Total          float64 `json:"total"`
}

// Payouts computes what each professional earns over appts under their
// payment model. Only the rate fields the model uses contribute.
func Payouts(appts []appointment.Appointment, pros []professional.Professional) []Payout {
	revenue := make(map[string]float64)
	for _, a := range appts {
		if earns(a) {
			revenue[a.ProfessionalID] += a.TotalValue
		}
	}

	out := make([]Payout, 0, len(pros))
	for _, p := range pros {
		rate, salary := professional.NormalizeRates(p.PaymentModel, p.CommissionRate, p.FixedSalary)
		po := Payout{
			ProfessionalID: p.ID,
			Name:           p.Name,
			Revenue:        revenue[p.ID],
			Commission:     finite(revenue[p.ID] * rate / 100),
			FixedSalary:    salary,
		}
		po.Total = po.Commission + po.FixedSalary
		out = append(out, po)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}
