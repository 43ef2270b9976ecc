package dto

import (
	"github.com/BruksfildServices01/salon-manager/internal/domain/business"
	"github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/permission"
)

type RegisterRequest struct {
	BusinessName    string `json:"business_name" binding:"required"`
	BusinessPhone   string `json:"business_phone"`
	BusinessAddress string `json:"business_address"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Name           string         `json:"name" binding:"required"`
	Email          string         `json:"email" binding:"required,email"`
	Password       string         `json:"password" binding:"required,min=6"`
	Role           string         `json:"role" binding:"required,oneof=owner admin receptionist professional"`
	ProfessionalID string         `json:"professional_id"`
	Permissions    permission.Set `json:"permissions"`
}

type PermissionsRequest struct {
	Role        string         `json:"role" binding:"omitempty,oneof=owner admin receptionist professional"`
	Permissions permission.Set `json:"permissions"`
}

type UserDTO struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	Role           string              `json:"role"`
	ProfessionalID string              `json:"professional_id,omitempty"`
	Permissions    permission.Set      `json:"permissions"`
	Modules        []permission.Module `json:"modules"`
}

func User(u user.User) UserDTO {
	perms := u.EffectivePermissions()
	return UserDTO{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		ProfessionalID: u.ProfessionalID,
		Permissions:    perms,
		Modules:        perms.Allowed(),
	}
}

type SessionDTO struct {
	User     UserDTO           `json:"user"`
	Business business.Settings `json:"business"`
	Token    string            `json:"token,omitempty"`
}
