package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/domain"
	apperrors "github.com/spec-kit/unifin/pkg/util"
)

// WalletHandler exposes the session's wallet connection.
type WalletHandler struct{}

// NewWalletHandler constructs handler.
func NewWalletHandler() *WalletHandler {
	return &WalletHandler{}
}

// Get GET /wallet.
func (h *WalletHandler) Get(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": s.Wallet.Session()})
}

// Connect POST /wallet/connect.
func (h *WalletHandler) Connect(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	ws, err := s.Wallet.Connect(c.UserContext())
	if err != nil {
		return connectError(err)
	}
	return c.JSON(fiber.Map{"data": ws})
}

// Disconnect POST /wallet/disconnect. Logs the session out as well.
func (h *WalletHandler) Disconnect(c *fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	s.Wallet.Disconnect(c.UserContext())
	return c.JSON(fiber.Map{"data": s.Snapshot()})
}

func connectError(err error) error {
	switch {
	case errors.Is(err, domain.ErrProviderUnavailable):
		return apperrors.NewDomainError("PROVIDER_UNAVAILABLE", err.Error(), fiber.StatusServiceUnavailable, nil)
	case errors.Is(err, domain.ErrUserRejected):
		return apperrors.NewDomainError("USER_REJECTED", "Wallet connection rejected by user", fiber.StatusConflict, nil)
	case errors.Is(err, domain.ErrConnectPending):
		return apperrors.NewConflict(err.Error(), nil)
	case errors.Is(err, domain.ErrNoAccounts):
		return apperrors.NewDomainError("NO_ACCOUNTS", err.Error(), fiber.StatusUnprocessableEntity, nil)
	default:
		return apperrors.NewUpstreamError("NETWORK_ERROR", "Failed to connect wallet", fiber.StatusBadGateway, nil, err)
	}
}
