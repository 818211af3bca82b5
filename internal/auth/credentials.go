package auth

import (
	"fmt"

	"github.com/spec-kit/unifin/internal/domain"
)

// Credential is one row of the demonstration credential table.
type Credential struct {
	Role     domain.Role
	UserID   string
	Password string
	Name     string
}

// SampleCredentials is the demonstration table shipped with the gateway. It is a stand-in
// for a real identity provider and offers no security.
var SampleCredentials = []Credential{
	{Role: domain.RoleStudent, UserID: "johndoe", Password: "johndoe123", Name: "John Doe"},
	{Role: domain.RoleStudent, UserID: "janedoe", Password: "janedoe123", Name: "Jane Doe"},
	{Role: domain.RoleAdmin, UserID: "admin", Password: "admin123", Name: "System Administrator"},
}

type credentialEntry struct {
	hash string
	name string
}

// CredentialTable maps (role, userID) to a password hash and display name.
type CredentialTable struct {
	entries map[domain.Role]map[string]credentialEntry
}

// NewCredentialTable hashes creds with bcrypt at the given cost.
func NewCredentialTable(creds []Credential, cost int) (*CredentialTable, error) {
	t := &CredentialTable{entries: make(map[domain.Role]map[string]credentialEntry)}
	for _, c := range creds {
		if !c.Role.Valid() {
			return nil, fmt.Errorf("credential %q: %w", c.UserID, domain.ErrUnknownRole)
		}
		hash, err := HashPassword(c.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("hash credential %q: %w", c.UserID, err)
		}
		if t.entries[c.Role] == nil {
			t.entries[c.Role] = make(map[string]credentialEntry)
		}
		t.entries[c.Role][c.UserID] = credentialEntry{hash: hash, name: c.Name}
	}
	return t, nil
}

// Verify returns the display name when (role, userID) exists and password matches exactly.
func (t *CredentialTable) Verify(role domain.Role, userID, password string) (string, bool) {
	byUser, ok := t.entries[role]
	if !ok {
		return "", false
	}
	entry, ok := byUser[userID]
	if !ok {
		return "", false
	}
	if err := ComparePassword(entry.hash, password); err != nil {
		return "", false
	}
	return entry.name, true
}
