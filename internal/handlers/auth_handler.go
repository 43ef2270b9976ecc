package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/config"
	"github.com/BruksfildServices01/salon-manager/internal/domain/business"
	"github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/permission"
	"github.com/BruksfildServices01/salon-manager/internal/store"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/account"
	"github.com/BruksfildServices01/salon-manager/internal/validators"
)

type AuthHandler struct {
	users    user.Repository
	settings *store.SettingsStore
	config   *config.Config
	// nil skips the MX lookup
	resolver validators.Resolver
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthHandler(users user.Repository, settings *store.SettingsStore, cfg *config.Config, resolver validators.Resolver, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		settings: settings,
		config:   cfg,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}
}

// --------- Handlers ---------

// Register bootstraps the business: it names the business and creates the
// owner account. It is only open while no account exists.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	ctx := c.Request.Context()

	n, err := h.users.Count(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if n > 0 {
		httperr.Forbidden(c, "registration_closed", "Cadastro já realizado. Peça acesso ao administrador.")
		return
	}

	email := user.NormalizeEmail(req.Email)
	if !h.emailAcceptable(c, email) {
		return
	}

	hash, err := account.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro interno.")
		return
	}

	u := user.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         permission.RoleOwner,
		Active:       true,
	}
	if u.ID, err = h.users.Create(ctx, u); err != nil {
		respondError(c, err)
		return
	}

	name := strings.TrimSpace(req.BusinessName)
	patch := business.Patch{Name: &name}
	if req.BusinessPhone != "" {
		patch.Phone = &req.BusinessPhone
	}
	if req.BusinessAddress != "" {
		patch.Address = &req.BusinessAddress
	}
	if err := h.settings.Update(ctx, patch); err != nil {
		h.logger.Warn("business settings not saved on register", zap.Error(err))
	}

	h.respondSession(c, http.StatusCreated, u)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	u, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		respondError(c, err)
		return
	}

	if !account.CheckPassword(u.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}
	if !u.Active {
		httperr.Forbidden(c, "user_inactive", "Usuário desativado.")
		return
	}

	h.respondSession(c, http.StatusOK, u)
}

// Me returns the signed-in user with their effective permissions.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			httperr.Unauthorized(c, "invalid_token", "Sessão inválida.")
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionDTO{
		User:     dto.User(u),
		Business: h.settings.Current(),
	})
}

func (h *AuthHandler) respondSession(c *gin.Context, status int, u user.User) {
	token, err := middleware.IssueToken(h.config.JWTSecret, u.ID, u.Role, u.Permissions, h.now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro interno.")
		return
	}

	c.JSON(status, dto.SessionDTO{
		User:     dto.User(u),
		Business: h.settings.Current(),
		Token:    token,
	})
}

// emailAcceptable checks syntax and, when a resolver is configured, that the
// domain can receive mail.
func (h *AuthHandler) emailAcceptable(c *gin.Context, email string) bool {
	if !validators.IsEmail(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return false
	}
	if h.resolver != nil && !validators.IsEmailDomainValid(c.Request.Context(), h.resolver, email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return false
	}
	return true
}
