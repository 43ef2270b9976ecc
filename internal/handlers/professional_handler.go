package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/domain/professional"
	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/store"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

type ProfessionalHandler struct {
	professionals *store.ProfessionalStore
	specialties   *store.SpecialtyStore
	settings      *store.SettingsStore
	defaultTZ     string
	now           func() time.Time
}

func NewProfessionalHandler(stores *store.Set, defaultTZ string) *ProfessionalHandler {
	return &ProfessionalHandler{
		professionals: stores.Professionals,
		specialties:   stores.Specialties,
		settings:      stores.Settings,
		defaultTZ:     defaultTZ,
		now:           time.Now,
	}
}

// ======================================================
// PROFESSIONALS
// ======================================================

func (h *ProfessionalHandler) List(c *gin.Context) {
	status := professional.Status(c.Query("status"))
	specialty := c.Query("specialty_id")

	out := make([]professional.Professional, 0)
	for _, p := range h.professionals.Items() {
		if status != "" && p.Status != status {
			continue
		}
		if specialty != "" && !hasSpecialty(p, specialty) {
			continue
		}
		out = append(out, p)
	}
	httpresp.List(c, out)
}

func hasSpecialty(p professional.Professional, id string) bool {
	for _, s := range p.Specialties {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (h *ProfessionalHandler) Get(c *gin.Context) {
	p, ok := h.professionals.Get(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}
	httpresp.OK(c, p)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	var req dto.ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	p := req.ToDomain()

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		httperr.BadRequest(c, "name_required", "Nome é obrigatório.")
		return
	}
	if p.Status == "" {
		p.Status = professional.StatusActive
	}
	if p.PaymentModel == "" {
		p.PaymentModel = professional.PaymentCommission
	}
	if !p.PaymentModel.Valid() {
		httperr.BadRequest(c, "invalid_payment_model", "Modelo de pagamento inválido.")
		return
	}
	if !validRates(p.CommissionRate, p.FixedSalary) {
		httperr.BadRequest(c, "invalid_rates", "Comissão deve estar entre 0 e 100 e salário não pode ser negativo.")
		return
	}

	id, err := h.professionals.Create(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, id)
}

func validRates(commission, salary float64) bool {
	return commission >= 0 && commission <= 100 && salary >= 0
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.professionals.Get(id); !ok {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var req dto.ProfessionalPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	p := req.ToDomain()

	if p.PaymentModel != nil && !p.PaymentModel.Valid() {
		httperr.BadRequest(c, "invalid_payment_model", "Modelo de pagamento inválido.")
		return
	}
	var commission, salary float64
	if p.CommissionRate != nil {
		commission = *p.CommissionRate
	}
	if p.FixedSalary != nil {
		salary = *p.FixedSalary
	}
	if !validRates(commission, salary) {
		httperr.BadRequest(c, "invalid_rates", "Comissão deve estar entre 0 e 100 e salário não pode ser negativo.")
		return
	}

	if err := h.professionals.Update(c.Request.Context(), id, p); err != nil {
		respondError(c, err)
		return
	}
	updated, _ := h.professionals.Get(id)
	httpresp.OK(c, updated)
}

func (h *ProfessionalHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.professionals.Get(id); !ok {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}
	if err := h.professionals.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddHistory appends an entry to the professional's timeline. A missing date
// means today in the business timezone.
func (h *ProfessionalHandler) AddHistory(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.professionals.Get(id); !ok {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var req dto.HistoryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	entry := req.ToDomain()
	if entry.Date.IsZero() {
		entry.Date = timezone.Today(h.now(), businessTimezone(h.settings, h.defaultTZ))
	}

	if err := h.professionals.AddHistoryEntry(c.Request.Context(), id, entry); err != nil {
		respondError(c, err)
		return
	}
	updated, _ := h.professionals.Get(id)
	httpresp.OK(c, updated)
}

// ======================================================
// SPECIALTIES
// ======================================================

func (h *ProfessionalHandler) ListSpecialties(c *gin.Context) {
	onlyActive := c.Query("active") == "true"

	out := make([]professional.Specialty, 0)
	for _, s := range h.specialties.Items() {
		if onlyActive && !s.Active {
			continue
		}
		out = append(out, s)
	}
	httpresp.List(c, out)
}

func (h *ProfessionalHandler) CreateSpecialty(c *gin.Context) {
	var req struct {
		Name   string `json:"name" binding:"required"`
		Color  string `json:"color"`
		Active *bool  `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		httperr.BadRequest(c, "name_required", "Nome é obrigatório.")
		return
	}

	sp := professional.Specialty{Name: strings.TrimSpace(req.Name), Color: req.Color, Active: true}
	if req.Active != nil {
		sp.Active = *req.Active
	}

	id, err := h.specialties.Create(c.Request.Context(), sp)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, id)
}

func (h *ProfessionalHandler) UpdateSpecialty(c *gin.Context) {
	var p professional.SpecialtyPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if err := h.specialties.Update(c.Request.Context(), c.Param("id"), p); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfessionalHandler) DeleteSpecialty(c *gin.Context) {
	if err := h.specialties.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
