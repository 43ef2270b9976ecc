package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/account"
)

// UserHandler manages staff accounts. It shares the auth handler's
// repository and email checks.
type UserHandler struct {
	auth *AuthHandler
}

func NewUserHandler(auth *AuthHandler) *UserHandler {
	return &UserHandler{auth: auth}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.auth.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.User(u))
	}
	httpresp.List(c, out)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := user.NormalizeEmail(req.Email)
	if !h.auth.emailAcceptable(c, email) {
		return
	}

	hash, err := account.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro interno.")
		return
	}

	id, err := h.auth.users.Create(c.Request.Context(), user.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          email,
		PasswordHash:   hash,
		Role:           req.Role,
		ProfessionalID: req.ProfessionalID,
		Permissions:    req.Permissions,
		Active:         true,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, id)
}

// UpdatePermissions replaces the role and explicit grants. An empty set
// returns the user to the role defaults.
func (h *UserHandler) UpdatePermissions(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	current, err := h.auth.users.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.PermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	role := req.Role
	if role == "" {
		role = current.Role
	}

	if err := h.auth.users.UpdatePermissions(ctx, id, role, req.Permissions); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.auth.users.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, dto.User(updated))
}
