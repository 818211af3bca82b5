package dto

import "github.com/spec-kit/unifin/internal/domain"

// LoginRequest payload.
type LoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthResponse reports the auth session after login or logout.
type AuthResponse struct {
	Authenticated bool                `json:"authenticated"`
	Session       *domain.AuthSession `json:"session,omitempty"`
}
