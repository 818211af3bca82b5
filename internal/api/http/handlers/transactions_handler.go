package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/service"
)

// TransactionsHandler serves the transaction history pages.
type TransactionsHandler struct {
	service *service.TransactionService
}

// NewTransactionsHandler constructs handler.
func NewTransactionsHandler(transactionService *service.TransactionService) *TransactionsHandler {
	return &TransactionsHandler{service: transactionService}
}

// Recent GET /transactions lists chain transactions touching the session account.
func (h *TransactionsHandler) Recent(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	txs, err := h.service.Recent(c.UserContext(), s.Wallet)
	if err != nil {
		return readError(err)
	}
	return c.JSON(fiber.Map{"data": txs})
}

// CallLog GET /admin/transactions lists recorded contract calls, newest first.
func (h *TransactionsHandler) CallLog(c *fiber.Ctx) error {
	calls, err := h.service.CallLog(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": calls})
}
