package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/service"
)

// PayrollHandler serves the payroll page.
type PayrollHandler struct {
	service *service.PayrollService
}

// NewPayrollHandler constructs handler.
func NewPayrollHandler(payrollService *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{service: payrollService}
}

// Process POST /payroll.
func (h *PayrollHandler) Process(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	form, err := parseForm[service.PayrollInput](c)
	if err != nil {
		return err
	}
	return respondResult(c, h.service.ProcessPayroll(c.UserContext(), s.Wallet, form), form)
}

// SendSalary POST /payroll/salary.
func (h *PayrollHandler) SendSalary(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	form, err := parseForm[service.SalaryInput](c)
	if err != nil {
		return err
	}
	return respondResult(c, h.service.SendSalary(c.UserContext(), s.Wallet, form), form)
}

// Balance GET /payroll/balance.
func (h *PayrollHandler) Balance(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	balance, err := h.service.Balance(c.UserContext(), s.Wallet)
	if err != nil {
		return readError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"balance_eth": balance}})
}
