package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/payment"
	"github.com/BruksfildServices01/salon-manager/internal/store"
	ucAppointment "github.com/BruksfildServices01/salon-manager/internal/usecase/appointment"
)

// CheckoutLinker is satisfied by *payment.MercadoPago.
type CheckoutLinker interface {
	CheckoutLink(ctx context.Context, a appointment.Appointment) (payment.Checkout, error)
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	appointments  *store.AppointmentStore
	clients       *store.ClientStore
	professionals *store.ProfessionalStore

	create   *ucAppointment.CreateAppointment
	complete *ucAppointment.CompleteAppointment
	cancel   *ucAppointment.CancelAppointment

	// nil when payments are not configured
	checkout CheckoutLinker
}

func NewAppointmentHandler(
	stores *store.Set,
	create *ucAppointment.CreateAppointment,
	complete *ucAppointment.CompleteAppointment,
	cancel *ucAppointment.CancelAppointment,
	checkout CheckoutLinker,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointments:  stores.Appointments,
		clients:       stores.Clients,
		professionals: stores.Professionals,
		create:        create,
		complete:      complete,
		cancel:        cancel,
		checkout:      checkout,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}
	if date, ok := dateQuery(c, "date"); !ok {
		return
	} else if !date.IsZero() {
		from, to = date, date
	}

	f := appointment.Filter{
		From:           from,
		To:             to,
		ProfessionalID: c.Query("professional_id"),
		ClientID:       c.Query("client_id"),
		Status:         appointment.Status(c.Query("status")),
	}

	matched := make([]appointment.Appointment, 0)
	for _, a := range h.appointments.Items() {
		if f.Matches(a) {
			matched = append(matched, a)
		}
	}

	httpresp.List(c, dto.AppointmentList(matched, h.clients.Items(), h.professionals.Items()))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	a, ok := h.appointments.Get(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}
	httpresp.OK(c, a)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	id, err := h.create.Execute(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, id)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id := c.Param("id")
	current, ok := h.appointments.Get(id)
	if !ok {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	var req dto.AppointmentPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	p := req.ToDomain()

	if p.Status != nil && !p.Status.Valid() {
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
		return
	}
	if p.PaymentStatus != nil && !p.PaymentStatus.Valid() {
		httperr.BadRequest(c, "invalid_payment_status", "Status de pagamento inválido.")
		return
	}

	// 🔑 remarcação não pode gerar conflito
	if p.Date != nil || p.StartTime != nil || p.EndTime != nil || p.ProfessionalID != nil {
		next := reschedule(current, p)
		if _, _, err := next.Span(); err != nil {
			httperr.BadRequest(c, "invalid_time_range", "O horário final deve ser depois do inicial.")
			return
		}
		if next.Status.Active() {
			if _, busy := appointment.FindConflict(h.appointments.Items(), next); busy {
				httperr.BadRequest(c, "time_slot_unavailable", "Conflito de horário.")
				return
			}
		}
	}

	if err := h.appointments.Update(c.Request.Context(), id, p); err != nil {
		respondError(c, err)
		return
	}

	updated, _ := h.appointments.Get(id)
	httpresp.OK(c, updated)
}

func reschedule(a appointment.Appointment, p appointment.Patch) appointment.Appointment {
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.StartTime != nil {
		a.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		a.EndTime = *p.EndTime
	}
	if p.Duration != nil {
		a.Duration = *p.Duration
	}
	if p.ProfessionalID != nil {
		a.ProfessionalID = *p.ProfessionalID
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	return a
}

// UpdateStatus routes completion and cancellation through their use cases;
// other statuses are written directly.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req dto.AppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
		return
	}

	ctx := c.Request.Context()
	var err error
	switch req.Status {
	case appointment.StatusCompleted:
		err = h.complete.Execute(ctx, id)
	case appointment.StatusCanceled:
		err = h.cancel.Execute(ctx, id)
	default:
		if _, ok := h.appointments.Get(id); !ok {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		err = h.appointments.UpdateStatus(ctx, id, req.Status)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	updated, _ := h.appointments.Get(id)
	httpresp.OK(c, updated)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	if err := h.complete.Execute(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	updated, _ := h.appointments.Get(c.Param("id"))
	httpresp.OK(c, updated)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	if err := h.cancel.Execute(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	updated, _ := h.appointments.Get(c.Param("id"))
	httpresp.OK(c, updated)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.appointments.Get(id); !ok {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}
	if err := h.appointments.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *AppointmentHandler) Checkout(c *gin.Context) {
	if h.checkout == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "payments_disabled", "Pagamentos não configurados.")
		return
	}

	a, ok := h.appointments.Get(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	link, err := h.checkout.CheckoutLink(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, link)
}
