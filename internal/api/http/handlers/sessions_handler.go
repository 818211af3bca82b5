package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/api/dto"
	"github.com/spec-kit/unifin/internal/auth"
	"github.com/spec-kit/unifin/internal/session"
)

// SessionsHandler opens, inspects and closes client sessions.
type SessionsHandler struct {
	registry *session.Registry
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

// NewSessionsHandler constructs handler.
func NewSessionsHandler(registry *session.Registry, tokens *auth.TokenManager, logger *zap.Logger) *SessionsHandler {
	return &SessionsHandler{registry: registry, tokens: tokens, logger: logger}
}

// Create POST /sessions. The new session silently restores a previous wallet connection.
func (h *SessionsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
	}

	s, err := h.registry.Create(c.UserContext(), req.ClientID)
	if err != nil {
		return err
	}
	token, expiresAt, err := h.tokens.GenerateToken(s.ID, s.ClientID)
	if err != nil {
		_ = h.registry.Destroy(s.ID)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Session:   s.Snapshot(),
	}})
}

// Current GET /sessions/me.
func (h *SessionsHandler) Current(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": s.Snapshot()})
}

// Delete DELETE /sessions/me tears the session down. The wallet flag survives so the next
// session from the same client reconnects.
func (h *SessionsHandler) Delete(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := h.registry.Destroy(s.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
