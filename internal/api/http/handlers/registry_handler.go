package handlers

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/service"
	apperrors "github.com/spec-kit/unifin/pkg/util"
)

// RegistryHandler serves the admin student and employee pages.
type RegistryHandler struct {
	service *service.RegistryService
}

// NewRegistryHandler constructs handler.
func NewRegistryHandler(registryService *service.RegistryService) *RegistryHandler {
	return &RegistryHandler{service: registryService}
}

// RegisterStudent POST /students. The password is never echoed back.
func (h *RegistryHandler) RegisterStudent(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	form, err := parseForm[service.RegisterStudentInput](c)
	if err != nil {
		return err
	}
	r := h.service.RegisterStudent(c.UserContext(), s.Wallet, form)
	form.Password = ""
	return respondResult(c, r, form)
}

// ListStudents GET /students.
func (h *RegistryHandler) ListStudents(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	students, err := h.service.ListStudents(c.UserContext(), s.Wallet)
	if err != nil {
		return readError(err)
	}
	return c.JSON(fiber.Map{"data": students})
}

// GetStudent GET /students/:address.
func (h *RegistryHandler) GetStudent(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	address := c.Params("address")
	if !common.IsHexAddress(address) {
		return apperrors.NewValidationError("address must be an Ethereum address", map[string]any{"address": address})
	}
	student, err := h.service.GetStudent(c.UserContext(), s.Wallet, address)
	if err != nil {
		return readError(err)
	}
	return c.JSON(fiber.Map{"data": student})
}

// AddEmployee POST /employees. The password is never echoed back.
func (h *RegistryHandler) AddEmployee(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	form, err := parseForm[service.AddEmployeeInput](c)
	if err != nil {
		return err
	}
	r := h.service.AddEmployee(c.UserContext(), s.Wallet, form)
	form.Password = ""
	return respondResult(c, r, form)
}

// ListEmployees GET /employees.
func (h *RegistryHandler) ListEmployees(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	employees, err := h.service.ListEmployees(c.UserContext(), s.Wallet)
	if err != nil {
		return readError(err)
	}
	return c.JSON(fiber.Map{"data": employees})
}
