package auth

import (
	"time"

	"github.com/spec-kit/unifin/internal/domain"
)

// Messages shown for each denial reason.
const (
	MessageNotAuthenticated   = "Please log in to access this page"
	MessageWrongRole          = "You don't have permission to access this page"
	MessageWalletNotConnected = "Please connect your wallet to access this page"
)

// DefaultRedirect is where denied visitors are sent.
const DefaultRedirect = "/"

// Decision is the route guard verdict for one view.
type Decision struct {
	Allow      bool              `json:"allow"`
	View       string            `json:"view"`
	Reason     domain.DenyReason `json:"reason,omitempty"`
	Message    string            `json:"message,omitempty"`
	RedirectTo string            `json:"redirect_to,omitempty"`
	From       string            `json:"from,omitempty"`
	DisplayFor time.Duration     `json:"-"`
}

// RedirectAfterMillis is DisplayFor in milliseconds, for JSON clients.
func (d Decision) RedirectAfterMillis() int64 {
	return d.DisplayFor.Milliseconds()
}

// Guard evaluates view access over the current auth and wallet state.
type Guard struct {
	display time.Duration
}

// NewGuard returns a guard whose denials ask the client to show the message for display.
func NewGuard(display time.Duration) *Guard {
	if display <= 0 {
		display = 3 * time.Second
	}
	return &Guard{display: display}
}

// Authorize checks the gate conditions in fixed order: login, role, wallet.
func Authorize(auth *domain.AuthSession, wallet domain.WalletSession, required *domain.Role) (domain.DenyReason, bool) {
	if auth == nil {
		return domain.DenyNotAuthenticated, false
	}
	if required != nil && auth.Role != *required {
		return domain.DenyWrongRole, false
	}
	if !wallet.Connected {
		return domain.DenyWalletNotConnected, false
	}
	return "", true
}

// Evaluate decides whether view may be rendered. Ungated views always pass.
func (g *Guard) Evaluate(view domain.View, auth *domain.AuthSession, wallet domain.WalletSession) Decision {
	if !view.Gated {
		return Decision{Allow: true, View: view.Name}
	}
	reason, ok := Authorize(auth, wallet, view.RequiredRole)
	if ok {
		return Decision{Allow: true, View: view.Name}
	}
	return Decision{
		View:       view.Name,
		Reason:     reason,
		Message:    DenyMessage(reason),
		RedirectTo: DefaultRedirect,
		From:       view.Path,
		DisplayFor: g.display,
	}
}

// DenyMessage maps a reason to its user-facing text.
func DenyMessage(reason domain.DenyReason) string {
	switch reason {
	case domain.DenyNotAuthenticated:
		return MessageNotAuthenticated
	case domain.DenyWrongRole:
		return MessageWrongRole
	case domain.DenyWalletNotConnected:
		return MessageWalletNotConnected
	default:
		return ""
	}
}
