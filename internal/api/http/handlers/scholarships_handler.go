package handlers

import (
	"context"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/chain"
	"github.com/spec-kit/unifin/internal/service"
	apperrors "github.com/spec-kit/unifin/pkg/util"
)

type reviewAction func(context.Context, chain.Wallet, uint64) chain.Result

// ScholarshipsHandler serves the scholarship application and review pages.
type ScholarshipsHandler struct {
	service *service.ScholarshipService
}

// NewScholarshipsHandler constructs handler.
func NewScholarshipsHandler(scholarshipService *service.ScholarshipService) *ScholarshipsHandler {
	return &ScholarshipsHandler{service: scholarshipService}
}

// Submit POST /scholarships.
func (h *ScholarshipsHandler) Submit(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	form, err := parseForm[service.ScholarshipInput](c)
	if err != nil {
		return err
	}
	return respondResult(c, h.service.Submit(c.UserContext(), s.Wallet, form), form)
}

// Departments GET /scholarships/departments.
func (h *ScholarshipsHandler) Departments(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": service.ScholarshipDepartments})
}

// List GET /scholarships.
func (h *ScholarshipsHandler) List(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	apps, err := h.service.List(c.UserContext(), s.Wallet)
	if err != nil {
		return readError(err)
	}
	items := make([]fiber.Map, 0, len(apps))
	for _, app := range apps {
		items = append(items, fiber.Map{"application": app, "status": app.Status()})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Approve POST /scholarships/:id/approve.
func (h *ScholarshipsHandler) Approve(c *fiber.Ctx) error {
	return h.review(c, h.service.Approve)
}

// Reject POST /scholarships/:id/reject.
func (h *ScholarshipsHandler) Reject(c *fiber.Ctx) error {
	return h.review(c, h.service.Reject)
}

func (h *ScholarshipsHandler) review(c *fiber.Ctx, action reviewAction) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("application id must be a non-negative integer", map[string]any{"id": c.Params("id")})
	}
	return respondResult(c, action(c.UserContext(), s.Wallet, id), fiber.Map{"id": id})
}

// Balance GET /scholarships/balance reports the session account's scholarship balance.
func (h *ScholarshipsHandler) Balance(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	address := c.Query("address", s.Wallet.Session().Address)
	if !common.IsHexAddress(address) {
		return apperrors.NewValidationError("address must be an Ethereum address", map[string]any{"address": address})
	}
	balance, err := h.service.Balance(c.UserContext(), s.Wallet, address)
	if err != nil {
		return readError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"address": address, "balance_eth": balance}})
}
