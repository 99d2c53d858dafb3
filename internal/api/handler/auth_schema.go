package handler

import "github.com/staffhub/workforce-system/internal/core/domain"

type registerRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	FullName string `json:"full_name"`
	Role     string `json:"role"      validate:"required,oneof=admin hr employee client"`
	TenantID string `json:"tenant_id"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type whoamiResponse struct {
	Identity domain.Identity `json:"identity"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}
