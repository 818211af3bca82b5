package domain

import "time"

// WalletSession is the connection state between a client session and its wallet provider.
// Connected is true iff Address is non-empty.
type WalletSession struct {
	Address   string `json:"address,omitempty"`
	Connected bool   `json:"connected"`
	Pending   bool   `json:"pending"`
}

// Consistent reports whether the connected/address invariant holds.
func (w WalletSession) Consistent() bool {
	return w.Connected == (w.Address != "")
}

// AuthSession identifies who is logged in for a client session.
type AuthSession struct {
	UserID     string    `json:"user_id"`
	Role       Role      `json:"role"`
	Name       string    `json:"name"`
	LoggedInAt time.Time `json:"logged_in_at"`
}
