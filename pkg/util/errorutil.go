package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/domain"
)

// DomainError is the error shape rendered by the HTTP layer as
// {"error":{"code","message","details"}}.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string, details map[string]any) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, details)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewUpstreamError reports a failure of an external collaborator such as the chain node.
func NewUpstreamError(code, message string, status int, details map[string]any, err error) error {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details, Err: err}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// sentinels maps domain errors that can surface outside a handler to their HTTP form.
var sentinels = []struct {
	err    error
	code   string
	status int
}{
	{domain.ErrSessionNotFound, "UNAUTHORIZED", http.StatusUnauthorized},
	{domain.ErrInvalidCredentials, "UNAUTHORIZED", http.StatusUnauthorized},
	{domain.ErrUnknownView, "NOT_FOUND", http.StatusNotFound},
	{domain.ErrUnknownRole, "VALIDATION_FAILED", http.StatusBadRequest},
	{domain.ErrWalletNotConnected, "VALIDATION_FAILED", http.StatusBadRequest},
	{domain.ErrConnectPending, "CONFLICT", http.StatusConflict},
	{domain.ErrUserRejected, "USER_REJECTED", http.StatusConflict},
	{domain.ErrNoAccounts, "NO_ACCOUNTS", http.StatusUnprocessableEntity},
	{domain.ErrProviderUnavailable, "PROVIDER_UNAVAILABLE", http.StatusServiceUnavailable},
}

// ToDomainError converts err to a DomainError. Unknown errors become INTERNAL_ERROR and keep
// the cause for logging only.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return &DomainError{Code: s.code, Message: s.err.Error(), HTTPStatus: s.status, Err: err}
		}
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{
			Code:       strings.ToUpper(strings.ReplaceAll(http.StatusText(fiberErr.Code), " ", "_")),
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError is ToDomainError typed as error, for returning from handlers.
func MapError(err error) error {
	return ToDomainError(err)
}
