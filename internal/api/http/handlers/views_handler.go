package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/api/dto"
	"github.com/spec-kit/unifin/internal/auth"
	"github.com/spec-kit/unifin/internal/domain"
	apperrors "github.com/spec-kit/unifin/pkg/util"
)

// ViewsHandler exposes the routing surface and the guard's verdicts.
type ViewsHandler struct {
	guard *auth.Guard
}

// NewViewsHandler constructs handler.
func NewViewsHandler(guard *auth.Guard) *ViewsHandler {
	return &ViewsHandler{guard: guard}
}

// List GET /views.
func (h *ViewsHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": domain.Views})
}

// Authorize GET /views/:name/authorize. A denial is a normal response here, not an error.
func (h *ViewsHandler) Authorize(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	view, err := domain.LookupView(c.Params("name"))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownView) {
			return apperrors.NewNotFound("view", map[string]any{"name": c.Params("name")})
		}
		return err
	}
	decision := h.guard.Evaluate(view, s.Auth.Session(), s.Wallet.Session())
	return c.JSON(fiber.Map{"data": dto.NewDecisionResponse(decision)})
}
