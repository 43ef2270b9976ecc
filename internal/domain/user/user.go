package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/permission"
)

var ErrEmailTaken = errors.New("email already registered")

type User struct {
	ID             string `json:"id"`
	ProfessionalID string `json:"professional_id,omitempty"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	PasswordHash   string `json:"-"`
	Role           string `json:"role"`
	// empty means the role defaults apply
	Permissions permission.Set `json:"permissions,omitempty"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
}

// EffectivePermissions is the explicit set, or the role defaults when none
// was stored.
func (u User) EffectivePermissions() permission.Set {
	if len(u.Permissions) > 0 {
		return u.Permissions
	}
	return permission.ForRole(u.Role)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	Get(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, u User) (string, error)
	UpdatePermissions(ctx context.Context, id, role string, perms permission.Set) error
}
