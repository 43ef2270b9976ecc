package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-manager/internal/config"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/permission"
)

const (
	ContextUserID      = "userID"
	ContextUserRole    = "userRole"
	ContextPermissions = "permissions"
)

const TokenTTL = 24 * time.Hour

// Claims carries the user's role and the permission set resolved at login.
type Claims struct {
	Role        string         `json:"role"`
	Permissions permission.Set `json:"permissions"`
	jwt.RegisteredClaims
}

func IssueToken(secret, userID, role string, perms permission.Set, now time.Time) (string, error) {
	claims := Claims{
		Role:        role,
		Permissions: perms,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Faça login para continuar.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			return
		}

		var claims Claims
		token, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Sessão inválida ou expirada.")
			return
		}

		if claims.Subject == "" {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Sessão inválida.")
			return
		}

		perms := claims.Permissions
		if len(perms) == 0 {
			perms = permission.ForRole(claims.Role)
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextPermissions, perms)

		c.Next()
	}
}

// RequirePermission must run after AuthMiddleware.
func RequirePermission(m permission.Module, a permission.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Permissions(c).HasPermission(m, a) {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Você não tem permissão para esta ação.")
			return
		}
		c.Next()
	}
}

func Permissions(c *gin.Context) permission.Set {
	if v, ok := c.Get(ContextPermissions); ok {
		if s, ok := v.(permission.Set); ok {
			return s
		}
	}
	return permission.Set{}
}
