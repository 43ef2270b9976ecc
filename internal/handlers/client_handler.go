package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/domain/client"
	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/store"
	"github.com/BruksfildServices01/salon-manager/internal/validators"
)

type ClientHandler struct {
	clients *store.ClientStore
}

func NewClientHandler(clients *store.ClientStore) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	f := client.Filter{Status: client.Status(c.Query("status"))}
	if f.Status != "" && !f.Status.Valid() {
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	out := make([]client.Client, 0)
	for _, cl := range h.clients.Items() {
		if !f.Matches(cl) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(cl.Name), query) &&
			!strings.Contains(cl.Phone, query) &&
			!strings.Contains(strings.ToLower(cl.Email), query) {
			continue
		}
		out = append(out, cl)
	}

	httpresp.List(c, out)
}

func (h *ClientHandler) Get(c *gin.Context) {
	cl, ok := h.clients.Get(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}
	httpresp.OK(c, cl)
}

// ======================================================
// CREATE CLIENT
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	cl := req.ToDomain()

	// 1️⃣ Nome obrigatório
	cl.Name = strings.TrimSpace(cl.Name)
	if cl.Name == "" {
		httperr.BadRequest(c, "name_required", "Nome é obrigatório.")
		return
	}

	// 2️⃣ Contato
	if !normalizeContact(c, &cl.Email, &cl.Phone) {
		return
	}

	// 3️⃣ Status
	if cl.Status == "" {
		cl.Status = client.StatusActive
	}
	if !cl.Status.Valid() {
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
		return
	}

	id, err := h.clients.Create(c.Request.Context(), cl)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, id)
}

// ======================================================
// UPDATE CLIENT
// ======================================================
func (h *ClientHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.clients.Get(id); !ok {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	var req dto.ClientPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	p := req.ToDomain()

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			httperr.BadRequest(c, "name_required", "Nome é obrigatório.")
			return
		}
		p.Name = &name
	}
	if p.Status != nil && !p.Status.Valid() {
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
		return
	}

	var email, phone string
	if p.Email != nil {
		email = *p.Email
	}
	if p.Phone != nil {
		phone = *p.Phone
	}
	if !normalizeContact(c, &email, &phone) {
		return
	}
	if p.Email != nil {
		p.Email = &email
	}
	if p.Phone != nil {
		p.Phone = &phone
	}

	if err := h.clients.Update(c.Request.Context(), id, p); err != nil {
		respondError(c, err)
		return
	}
	updated, _ := h.clients.Get(id)
	httpresp.OK(c, updated)
}

// ======================================================
// DELETE CLIENT
// ======================================================
func (h *ClientHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.clients.Get(id); !ok {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}
	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// normalizeContact validates optional email and phone in place. Empty
// values are allowed.
func normalizeContact(c *gin.Context, email, phone *string) bool {
	if e := strings.ToLower(strings.TrimSpace(*email)); e != "" {
		if !validators.IsEmail(e) {
			httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
			return false
		}
		*email = e
	}
	if strings.TrimSpace(*phone) != "" {
		normalized, ok := validators.NormalizePhone(*phone)
		if !ok {
			httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
			return false
		}
		*phone = normalized
	}
	return true
}
