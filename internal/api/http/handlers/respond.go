package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/api/dto"
	"github.com/spec-kit/unifin/internal/chain"
	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/session"
	apperrors "github.com/spec-kit/unifin/pkg/util"
)

func currentSession(c *fiber.Ctx) (*session.Session, error) {
	s, ok := session.FromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("session required")
	}
	return s, nil
}

// parseForm decodes the request body into a T.
func parseForm[T any](c *fiber.Ctx) (T, error) {
	var form T
	if err := c.BodyParser(&form); err != nil {
		return form, apperrors.NewValidationError("invalid payload", nil)
	}
	return form, nil
}

// respondResult renders a call-site outcome. Success clears the form; failure echoes it back
// in the error details so the client can retry without retyping.
func respondResult[T any](c *fiber.Ctx, r chain.Result, form T) error {
	if !r.OK() {
		domainErr := apperrors.ToDomainError(r.AsError())
		domainErr.Details["form"] = form
		return domainErr
	}
	var cleared T
	return c.JSON(fiber.Map{
		"data": dto.NewResultResponse(r),
		"form": cleared,
	})
}

// readError maps a failed chain read onto the call-site error taxonomy.
func readError(err error) error {
	switch {
	case errors.Is(err, domain.ErrWalletNotConnected):
		return chain.Fail(chain.KindValidation, chain.MessageWalletNotConnected, err).AsError()
	case errors.Is(err, domain.ErrProviderUnavailable):
		return chain.Fail(chain.KindEnvironment, err.Error(), err).AsError()
	}
	return chain.Classify(err).AsError()
}
