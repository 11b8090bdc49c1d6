// Package auth contains domain-level types for the portal session.
// It is pure and free of framework/adapter concerns.
package auth

import (
	"fmt"
	"strings"
)

// Role represents a tenant-scoped authorization role issued by the backend.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseRole normalizes user input into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q (valid options: admin, user)", s)
	}
	return r, nil
}

// Identity is the principal resolved from the backend for the current token.
// It is replaced wholesale on every resolution and never mutated in place.
type Identity struct {
	ID         int64  `json:"id"`
	TenantID   int64  `json:"tenant_id"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	TenantName string `json:"tenant_name"`
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Credentials are submitted to the backend to obtain a bearer token.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// State is the lifecycle state of a session store.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateLoading:
		return "LOADING"
	case StateAuthenticated:
		return "AUTHENTICATED"
	case StateAnonymous:
		return "ANONYMOUS"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Resolved reports whether the state is conclusive (no resolution pending).
func (s State) Resolved() bool {
	return s == StateAuthenticated || s == StateAnonymous
}

// Snapshot is an immutable view of a session at a point in time.
// User is non-nil only when Token is non-empty.
type Snapshot struct {
	Token   string
	User    *Identity
	Loading bool
	State   State
}

// Authenticated reports whether the snapshot carries a resolved identity.
func (s Snapshot) Authenticated() bool { return s.User != nil }
