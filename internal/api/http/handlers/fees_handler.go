package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/api/dto"
	"github.com/spec-kit/unifin/internal/service"
)

// FeesHandler serves the fee payment pages.
type FeesHandler struct {
	service *service.FeeService
}

// NewFeesHandler constructs handler.
func NewFeesHandler(feeService *service.FeeService) *FeesHandler {
	return &FeesHandler{service: feeService}
}

// PayFee POST /fees.
func (h *FeesHandler) PayFee(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	form, err := parseForm[service.PayFeeInput](c)
	if err != nil {
		return err
	}
	return respondResult(c, h.service.PayFee(c.UserContext(), s.Wallet, form), form)
}

// PayTuition POST /fees/tuition.
func (h *FeesHandler) PayTuition(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	form, err := parseForm[service.TuitionInput](c)
	if err != nil {
		return err
	}
	r, history := h.service.PayTuition(c.UserContext(), s.Wallet, form)
	if !r.OK() {
		return respondResult(c, r, form)
	}
	return c.JSON(fiber.Map{
		"data":    dto.NewResultResponse(r),
		"form":    service.TuitionInput{},
		"history": history,
	})
}

// History GET /fees/history.
func (h *FeesHandler) History(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	records, err := h.service.History(c.UserContext(), s.Wallet)
	if err != nil {
		return readError(err)
	}
	return c.JSON(fiber.Map{"data": records})
}
