package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/chain"
	"github.com/spec-kit/unifin/internal/persistence"
	"github.com/spec-kit/unifin/internal/wallet"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
	provider    wallet.Provider
}

// NewHealthHandler returns a new handler instance. Unconfigured postgres or redis are
// reported as "disabled" and do not fail readiness.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis, provider wallet.Provider) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis, provider: provider}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	depStatus["postgres"] = probe(h.postgres.Configured(), func() error { return h.postgres.Ping(ctx) }, &ready)
	depStatus["redis"] = probe(h.redis.ClientHandle() != nil, func() error { return h.redis.Ping(ctx) }, &ready)

	if h.provider == nil {
		depStatus["chain"] = "provider unavailable"
		ready = false
	} else if id, err := chain.ChainID(ctx, h.provider); err != nil {
		depStatus["chain"] = err.Error()
		ready = false
	} else {
		depStatus["chain"] = fiber.Map{"status": "ok", "chain_id": id}
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}

func probe(configured bool, ping func() error, ready *bool) string {
	if !configured {
		return "disabled"
	}
	if err := ping(); err != nil {
		*ready = false
		return err.Error()
	}
	return "ok"
}
