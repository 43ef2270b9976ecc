package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/gateway"
	"github.com/BruksfildServices01/salon-manager/internal/permission"
	"github.com/BruksfildServices01/salon-manager/internal/store"
)

var _ user.Repository = (*UserGatewayRepository)(nil)

// UserGatewayRepository reads accounts straight from the gateway. Users are
// not kept in a synchronized collection.
type UserGatewayRepository struct {
	gw gateway.Gateway
}

func NewUserGatewayRepository(gw gateway.Gateway) *UserGatewayRepository {
	return &UserGatewayRepository{gw: gw}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *UserGatewayRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return r.one(ctx, gateway.Eq("email", user.NormalizeEmail(email)))
}

func (r *UserGatewayRepository) Get(ctx context.Context, id string) (user.User, error) {
	return r.one(ctx, gateway.ByID(id))
}

func (r *UserGatewayRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.gw.Select(ctx, store.TableUsers, gateway.Query{}.OrderBy("created_at", false))
	if err != nil {
		return nil, err
	}
	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		u, err := toUser(row)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *UserGatewayRepository) Count(ctx context.Context) (int, error) {
	rows, err := r.gw.Select(ctx, store.TableUsers, gateway.Query{})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *UserGatewayRepository) one(ctx context.Context, f gateway.Filter) (user.User, error) {
	rows, err := r.gw.Select(ctx, store.TableUsers, gateway.Where(f))
	if err != nil {
		return user.User{}, err
	}
	if len(rows) == 0 {
		return user.User{}, fmt.Errorf("user %v: %w", f.Value, gateway.ErrNotFound)
	}
	return toUser(rows[0])
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *UserGatewayRepository) Create(ctx context.Context, u user.User) (string, error) {
	u.Email = user.NormalizeEmail(u.Email)
	if _, err := r.FindByEmail(ctx, u.Email); err == nil {
		return "", user.ErrEmailTaken
	}

	perms, err := encodePermissions(u.Permissions)
	if err != nil {
		return "", err
	}
	row := gateway.Row{
		"name":          u.Name,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"role":          u.Role,
		"permissions":   perms,
		"active":        true,
	}
	if u.ProfessionalID != "" {
		row["professional_id"] = u.ProfessionalID
	}

	stored, err := r.gw.Insert(ctx, store.TableUsers, row)
	if err != nil {
		return "", err
	}
	id, _ := stored["id"].(string)
	return id, nil
}

func (r *UserGatewayRepository) UpdatePermissions(ctx context.Context, id, role string, perms permission.Set) error {
	encoded, err := encodePermissions(perms)
	if err != nil {
		return err
	}
	patch := gateway.Row{"permissions": encoded}
	if role != "" {
		patch["role"] = role
	}
	return r.gw.Update(ctx, store.TableUsers, id, patch)
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func encodePermissions(s permission.Set) (string, error) {
	if len(s) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode permissions: %w", err)
	}
	return string(b), nil
}

func toUser(row gateway.Row) (user.User, error) {
	u := user.User{
		ID:             text(row["id"]),
		ProfessionalID: text(row["professional_id"]),
		Name:           text(row["name"]),
		Email:          text(row["email"]),
		PasswordHash:   text(row["password_hash"]),
		Role:           text(row["role"]),
		Active:         true,
	}
	if v, ok := row["active"].(bool); ok {
		u.Active = v
	}
	switch t := row["created_at"].(type) {
	case time.Time:
		u.CreatedAt = t.UTC()
	case string:
		u.CreatedAt, _ = time.Parse(time.RFC3339Nano, t)
	}

	perms, err := permission.Parse(document(row["permissions"]))
	if err != nil {
		return user.User{}, fmt.Errorf("user %s permissions: %w", u.ID, err)
	}
	u.Permissions = perms
	return u, nil
}

// document returns a jsonb value as raw JSON whether the driver handed it
// over as text or already decoded.
func document(v any) []byte {
	switch d := v.(type) {
	case nil:
		return nil
	case string:
		return []byte(d)
	case []byte:
		return d
	}
	b, _ := json.Marshal(v)
	return b
}

func text(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	return ""
}
