// Package report derives views from collection snapshots. Every function is
// pure and recomputes from scratch; empty input yields zeros or empty slices.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/client"
	"github.com/BruksfildServices01/salon-manager/internal/domain/professional"
	"github.com/BruksfildServices01/salon-manager/internal/domain/stock"
)

// Entry is one row of a grouped view.
type Entry struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Percentage returns part as a percentage of total, 0 when total is 0.
func Percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return finite(part / total * 100)
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return finite(num / den)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// earns reports whether an appointment counts towards revenue.
func earns(a appointment.Appointment) bool {
	return a.Status == appointment.StatusCompleted
}

// ==================================================
// Revenue
// ==================================================

// RevenueByService sums line item prices of completed appointments per
// service, highest first.
func RevenueByService(appts []appointment.Appointment) []Entry {
	g := newGrouper()
	for _, a := range appts {
		if !earns(a) {
			continue
		}
		for _, s := range a.Services {
			key := s.ServiceID
			if key == "" {
				key = s.Name
			}
			g.add(key, s.Name, s.Price)
		}
	}
	return g.entries()
}

// RevenueByProfessional sums the total value of completed appointments per
// professional. Unknown professionals are labelled by id.
func RevenueByProfessional(appts []appointment.Appointment, pros []professional.Professional) []Entry {
	names := make(map[string]string, len(pros))
	for _, p := range pros {
		names[p.ID] = p.Name
	}

	g := newGrouper()
	for _, a := range appts {
		if !earns(a) {
			continue
		}
		label := names[a.ProfessionalID]
		if label == "" {
			label = a.ProfessionalID
		}
		g.add(a.ProfessionalID, label, a.TotalValue)
	}
	return g.entries()
}

func TotalRevenue(appts []appointment.Appointment) float64 {
	total := 0.0
	for _, a := range appts {
		if earns(a) {
			total += a.TotalValue
		}
	}
	return total
}

// AverageTicket is revenue per completed appointment.
func AverageTicket(appts []appointment.Appointment) float64 {
	n := 0
	for _, a := range appts {
		if earns(a) {
			n++
		}
	}
	return ratio(TotalRevenue(appts), float64(n))
}

// ==================================================
// Rankings
// ==================================================

// TopServices ranks services by how often they were booked, ignoring
// canceled appointments. n <= 0 returns every service.
func TopServices(appts []appointment.Appointment, n int) []Entry {
	counts := make(map[string]*Entry)
	total := 0
	for _, a := range appts {
		if a.Status == appointment.StatusCanceled {
			continue
		}
		for _, s := range a.Services {
			key := s.ServiceID
			if key == "" {
				key = s.Name
			}
			e, ok := counts[key]
			if !ok {
				e = &Entry{Key: key, Label: s.Name}
				counts[key] = e
			}
			e.Count++
			e.Value += s.Price
			total++
		}
	}

	out := make([]Entry, 0, len(counts))
	for _, e := range counts {
		e.Percentage = Percentage(float64(e.Count), float64(total))
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return limit(out, n)
}

// TopClients ranks clients by total spent.
func TopClients(clients []client.Client, n int) []Entry {
	total := 0.0
	for _, c := range clients {
		total += c.TotalSpent
	}

	out := make([]Entry, 0, len(clients))
	for _, c := range clients {
		out = append(out, Entry{
			Key:        c.ID,
			Label:      c.Name,
			Count:      c.VisitsCount,
			Value:      c.TotalSpent,
			Percentage: Percentage(c.TotalSpent, total),
		})
	}
	sortByValue(out)
	return limit(out, n)
}

// ==================================================
// Counts
// ==================================================

// AverageSatisfaction averages ratings, 0 for none.
func AverageSatisfaction(ratings []float64) float64 {
	sum := 0.0
	for _, r := range ratings {
		sum += r
	}
	return ratio(sum, float64(len(ratings)))
}

func CountByStatus(appts []appointment.Appointment) map[appointment.Status]int {
	out := make(map[appointment.Status]int)
	for _, a := range appts {
		out[a.Status]++
	}
	return out
}

// ClientSegments groups clients by status with each group's share.
func ClientSegments(clients []client.Client) []Entry {
	g := newGrouper()
	for _, c := range clients {
		g.add(string(c.Status), string(c.Status), c.TotalSpent)
	}
	out := g.entries()
	for i := range out {
		out[i].Percentage = Percentage(float64(out[i].Count), float64(len(clients)))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ==================================================
// Stock
// ==================================================

// LowStock returns products at or below their minimum, emptiest first.
func LowStock(products []stock.Product) []stock.Product {
	out := make([]stock.Product, 0)
	for _, p := range products {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out
}

// ExpiringProducts returns products expiring before now+window, soonest
// first. Already expired products are included.
func ExpiringProducts(products []stock.Product, now time.Time, window time.Duration) []stock.Product {
	out := make([]stock.Product, 0)
	for _, p := range products {
		if p.ExpiresWithin(now, window) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpirationDate.Before(out[j].ExpirationDate) })
	return out
}

// StockValue is the purchase cost of everything on hand.
func StockValue(products []stock.Product) float64 {
	total := 0.0
	for _, p := range products {
		total += p.Quantity * p.PurchasePrice
	}
	return total
}

// ==================================================
// helpers
// ==================================================

type grouper struct {
	order []string
	byKey map[string]*Entry
	total float64
}

func newGrouper() *grouper {
	return &grouper{byKey: make(map[string]*Entry)}
}

func (g *grouper) add(key, label string, value float64) {
	e, ok := g.byKey[key]
	if !ok {
		e = &Entry{Key: key, Label: label}
		g.byKey[key] = e
		g.order = append(g.order, key)
	}
	e.Count++
	e.Value += value
	g.total += value
}

func (g *grouper) entries() []Entry {
	out := make([]Entry, 0, len(g.order))
	for _, k := range g.order {
		e := *g.byKey[k]
		e.Percentage = Percentage(e.Value, g.total)
		out = append(out, e)
	}
	sortByValue(out)
	return out
}

func sortByValue(out []Entry) {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
}

func limit(out []Entry, n int) []Entry {
	if n > 0 && len(out) > n {
		return out[:n]
	}
	return out
}
