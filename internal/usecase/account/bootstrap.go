package account

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/permission"
)

// EnsureOwner creates the first owner account from configuration when the
// users table is still empty. Later starts leave existing accounts alone.
type EnsureOwner struct {
	users  user.Repository
	logger *zap.Logger
}

func NewEnsureOwner(users user.Repository, logger *zap.Logger) *EnsureOwner {
	return &EnsureOwner{users: users, logger: logger}
}

func (uc *EnsureOwner) Execute(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	n, err := uc.users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}

	id, err := uc.users.Create(ctx, user.User{
		Name:         "Administrador",
		Email:        email,
		PasswordHash: hash,
		Role:         permission.RoleOwner,
		Active:       true,
	})
	if err != nil {
		return false, fmt.Errorf("create owner: %w", err)
	}

	uc.logger.Info("owner account created", zap.String("user_id", id), zap.String("email", user.NormalizeEmail(email)))
	return true, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
