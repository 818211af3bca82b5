package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/service"
)

// FundsHandler serves the fund allocation page.
type FundsHandler struct {
	service *service.FundService
}

// NewFundsHandler constructs handler.
func NewFundsHandler(fundService *service.FundService) *FundsHandler {
	return &FundsHandler{service: fundService}
}

// Allocate POST /funds.
func (h *FundsHandler) Allocate(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	form, err := parseForm[service.AllocateFundsInput](c)
	if err != nil {
		return err
	}
	return respondResult(c, h.service.AllocateFunds(c.UserContext(), s.Wallet, form), form)
}
