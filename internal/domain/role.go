package domain

import (
	"fmt"
	"slices"
)

// Role is the closed set of roles a logged-in user can hold.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Roles lists every known role.
var Roles = []Role{RoleStudent, RoleAdmin}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

// ParseRole converts raw input into a Role.
func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if !r.Valid() {
		return "", fmt.Errorf("%w %q, expected one of %v", ErrUnknownRole, raw, Roles)
	}
	return r, nil
}
