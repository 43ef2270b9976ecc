package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/domain/stock"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/store"
)

type SupplierHandler struct {
	suppliers *store.SupplierStore
}

func NewSupplierHandler(suppliers *store.SupplierStore) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

func (h *SupplierHandler) List(c *gin.Context) {
	httpresp.List(c, h.suppliers.Items())
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var req stock.Supplier
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	req.ID = ""
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httperr.BadRequest(c, "name_required", "Nome é obrigatório.")
		return
	}
	if !normalizeContact(c, &req.Email, &req.Phone) {
		return
	}

	id, err := h.suppliers.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, id)
}

func (h *SupplierHandler) Update(c *gin.Context) {
	var p stock.SupplierPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		httperr.BadRequest(c, "name_required", "Nome é obrigatório.")
		return
	}

	if err := h.suppliers.Update(c.Request.Context(), c.Param("id"), p); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SupplierHandler) Delete(c *gin.Context) {
	if err := h.suppliers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
