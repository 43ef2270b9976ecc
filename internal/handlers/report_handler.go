package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/report"
	"github.com/BruksfildServices01/salon-manager/internal/store"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

type ReportHandler struct {
	stores    *store.Set
	defaultTZ string
	now       func() time.Time
}

func NewReportHandler(stores *store.Set, defaultTZ string) *ReportHandler {
	return &ReportHandler{stores: stores, defaultTZ: defaultTZ, now: time.Now}
}

func (h *ReportHandler) today() time.Time {
	return timezone.Today(h.now(), businessTimezone(h.stores.Settings, h.defaultTZ))
}

// period reads from/to, defaulting to the current month.
func (h *ReportHandler) period(c *gin.Context) ([]appointment.Appointment, time.Time, time.Time, bool) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return nil, time.Time{}, time.Time{}, false
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return nil, time.Time{}, time.Time{}, false
	}
	if from.IsZero() && to.IsZero() {
		from, to = monthRange(h.today())
	}

	f := appointment.Filter{From: from, To: to, ProfessionalID: c.Query("professional_id")}
	out := make([]appointment.Appointment, 0)
	for _, a := range h.stores.Appointments.Items() {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out, from, to, true
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *ReportHandler) Dashboard(c *gin.Context) {
	httpresp.OK(c, report.BuildDashboard(report.DashboardInput{
		Appointments:  h.stores.Appointments.Items(),
		Clients:       h.stores.Clients.Items(),
		Products:      h.stores.Stock.Products(),
		Professionals: h.stores.Professionals.Items(),
		Now:           h.today(),
	}))
}

// ======================================================
// FINANCEIRO
// ======================================================

type revenueReport struct {
	From                 time.Time                  `json:"from"`
	To                   time.Time                  `json:"to"`
	Total                float64                    `json:"total"`
	AverageTicket        float64                    `json:"average_ticket"`
	StatusCounts         map[appointment.Status]int `json:"status_counts"`
	ByService            []report.Entry             `json:"by_service"`
	ByProfessional       []report.Entry             `json:"by_professional"`
	TopServices          []report.Entry             `json:"top_services"`
	AppointmentsInPeriod int                        `json:"appointments_in_period"`
}

func (h *ReportHandler) Revenue(c *gin.Context) {
	appts, from, to, ok := h.period(c)
	if !ok {
		return
	}
	httpresp.OK(c, revenueReport{
		From:                 from,
		To:                   to,
		Total:                report.TotalRevenue(appts),
		AverageTicket:        report.AverageTicket(appts),
		StatusCounts:         report.CountByStatus(appts),
		ByService:            report.RevenueByService(appts),
		ByProfessional:       report.RevenueByProfessional(appts, h.stores.Professionals.Items()),
		TopServices:          report.TopServices(appts, 5),
		AppointmentsInPeriod: len(appts),
	})
}

func (h *ReportHandler) Payouts(c *gin.Context) {
	appts, _, _, ok := h.period(c)
	if !ok {
		return
	}
	httpresp.List(c, report.Payouts(appts, h.stores.Professionals.Items()))
}

// ======================================================
// CLIENTES E ESTOQUE
// ======================================================

func (h *ReportHandler) Clients(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || n <= 0 {
		n = 10
	}
	clients := h.stores.Clients.Items()
	httpresp.OK(c, gin.H{
		"top_clients": report.TopClients(clients, n),
		"segments":    report.ClientSegments(clients),
	})
}

func (h *ReportHandler) Stock(c *gin.Context) {
	products := h.stores.Stock.Products()
	httpresp.OK(c, gin.H{
		"low_stock":   report.LowStock(products),
		"expiring":    report.ExpiringProducts(products, h.today(), expiringWindow),
		"stock_value": report.StockValue(products),
	})
}
