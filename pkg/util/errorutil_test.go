package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/unifin/internal/domain"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	de := ToDomainError(fmt.Errorf("wrapped: %w", NewForbidden("nope", nil)))
	assert.Equal(t, "FORBIDDEN", de.Code)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)

	de = ToDomainError(fmt.Errorf("lookup: %w", domain.ErrSessionNotFound))
	assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
	assert.Equal(t, domain.ErrSessionNotFound.Error(), de.Message)
	assert.ErrorIs(t, de, domain.ErrSessionNotFound)

	de = ToDomainError(domain.ErrUnknownView)
	assert.Equal(t, "NOT_FOUND", de.Code)

	de = ToDomainError(fiber.NewError(fiber.StatusMethodNotAllowed, "method not allowed"))
	assert.Equal(t, "METHOD_NOT_ALLOWED", de.Code)

	boom := errors.New("boom")
	de = ToDomainError(boom)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, "internal server error", de.Message)
	assert.ErrorIs(t, de, boom)
}

func TestDomainError_Error(t *testing.T) {
	err := NewUpstreamError("NETWORK_ERROR", "node unreachable", http.StatusBadGateway, nil, errors.New("dial tcp"))
	require.EqualError(t, err, "node unreachable: dial tcp")
	assert.EqualError(t, NewNotFound("student", nil), "student not found")
}
