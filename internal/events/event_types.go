package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/unifin/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventWalletConnected      EventType = "wallet.connected"
	EventWalletDisconnected   EventType = "wallet.disconnected"
	EventWalletAccountChanged EventType = "wallet.account_changed"
	EventUserLoggedIn         EventType = "auth.logged_in"
	EventUserLoggedOut        EventType = "auth.logged_out"
	EventContractCall         EventType = "contract.call"
)

// Event represents a session-scoped domain event.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// WalletPayload carries wallet transitions.
type WalletPayload struct {
	Address         string `json:"address,omitempty"`
	PreviousAddress string `json:"previous_address,omitempty"`
	Cause           string `json:"cause,omitempty"`
}

// AuthPayload carries login/logout transitions.
type AuthPayload struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
	Cause  string      `json:"cause,omitempty"`
}

// ContractCallPayload summarises a contract write outcome.
type ContractCallPayload struct {
	Contract string `json:"contract"`
	Method   string `json:"method"`
	Kind     string `json:"kind"`
	TxHash   string `json:"tx_hash,omitempty"`
}

// NewEvent stamps a fresh event for a session.
func NewEvent(t EventType, sessionID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
