package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/api/dto"
	"github.com/spec-kit/unifin/internal/domain"
	apperrors "github.com/spec-kit/unifin/pkg/util"
)

// AuthHandler logs users in and out of the current session.
type AuthHandler struct{}

// NewAuthHandler constructs handler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Login POST /auth/login. Students must connect a wallet first; admins may log in without one.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	req, err := parseForm[dto.LoginRequest](c)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.UserID) == "" || req.Password == "" {
		return apperrors.NewValidationError("Please fill in all fields", nil)
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return apperrors.NewValidationError("role must be student or admin", map[string]any{"role": req.Role, "allowed": domain.Roles})
	}
	if role == domain.RoleStudent && !s.Wallet.Session().Connected {
		return apperrors.NewValidationError("Please connect your wallet first", nil)
	}

	if !s.Auth.Login(req.UserID, req.Password, role) {
		return apperrors.NewUnauthorized(domain.ErrInvalidCredentials.Error())
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{Authenticated: true, Session: s.Auth.Session()}})
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	s.Auth.Logout()
	return c.JSON(fiber.Map{"data": dto.AuthResponse{Authenticated: false}})
}
