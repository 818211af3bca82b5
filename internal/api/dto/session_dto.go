package dto

import (
	"time"

	"github.com/spec-kit/unifin/internal/session"
)

// CreateSessionRequest opens a client session. ClientID identifies the browser or device
// across sessions and keys the persisted wallet flag.
type CreateSessionRequest struct {
	ClientID string `json:"client_id"`
}

// SessionResponse is returned when a session is opened or refreshed.
type SessionResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Session   session.Snapshot `json:"session"`
}
