package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/service"
)

// PaymentsHandler serves the payments page.
type PaymentsHandler struct {
	service *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{service: paymentService}
}

// Send POST /payments.
func (h *PaymentsHandler) Send(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	form, err := parseForm[service.SendPaymentInput](c)
	if err != nil {
		return err
	}
	return respondResult(c, h.service.SendPayment(c.UserContext(), s.Wallet, form), form)
}
