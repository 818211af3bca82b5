package session

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/unifin/internal/auth"
	"github.com/spec-kit/unifin/internal/domain"
	apperrors "github.com/spec-kit/unifin/pkg/util"
)

const sessionKey = "client_session"

// Middleware validates bearer tokens and loads the caller's session.
type Middleware struct {
	tokens   *auth.TokenManager
	registry *Registry
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *auth.TokenManager, registry *Registry) *Middleware {
	return &Middleware{tokens: tokens, registry: registry}
}

// Handle enforces a valid session token for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	s, err := m.registry.Get(claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return apperrors.NewUnauthorized("session expired")
		}
		return apperrors.MapError(err)
	}
	if s.ClientID != claims.ClientID {
		return apperrors.NewUnauthorized("session does not belong to client")
	}

	s.Touch(m.registry.now())
	c.Locals(sessionKey, s)
	return c.Next()
}

// FromContext retrieves the session loaded by Handle.
func FromContext(c *fiber.Ctx) (*Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	s, ok := val.(*Session)
	return s, ok
}

// DenialObserver is told about every denied view.
type DenialObserver interface {
	RecordDenial(view, reason string)
}

// RequireView denies the request unless the guard admits the session to view.
func RequireView(guard *auth.Guard, viewName string, observers ...DenialObserver) fiber.Handler {
	view, lookupErr := domain.LookupView(viewName)

	return func(c *fiber.Ctx) error {
		if lookupErr != nil {
			return apperrors.NewInternalError(lookupErr)
		}
		s, ok := FromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("session required")
		}
		decision := guard.Evaluate(view, s.Auth.Session(), s.Wallet.Session())
		if !decision.Allow {
			for _, o := range observers {
				o.RecordDenial(decision.View, string(decision.Reason))
			}
			return apperrors.NewForbidden(decision.Message, DenialDetails(decision))
		}
		return c.Next()
	}
}

// DenialDetails renders a denied decision for error responses.
func DenialDetails(d auth.Decision) map[string]any {
	return map[string]any{
		"view":              d.View,
		"reason":            d.Reason,
		"redirect_to":       d.RedirectTo,
		"from":              d.From,
		"redirect_after_ms": d.RedirectAfterMillis(),
	}
}
