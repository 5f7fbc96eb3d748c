// Package session holds the role-scoped session value threaded through every
// gateway call, and its persistence between CLI invocations.
package session

import (
	"fmt"
	"strings"

	cerrors "carrental/cli/internal/errors"
)

// Role is the privilege level of a session.
type Role string

const (
	// Admin may provision databases and mutate the inventory.
	Admin Role = "admin"
	// Guest may only search and view.
	Guest Role = "guest"
)

// ParseRole maps user input to a Role. Unknown roles are a configuration error.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case Admin:
		return Admin, nil
	case Guest:
		return Guest, nil
	}
	return "", cerrors.Newf(cerrors.Configuration, "unknown role %q (want admin or guest)", s)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == Admin || r == Guest }

func (r Role) String() string { return string(r) }

// Session is the explicit per-login state. Database is the active tenant
// database of an admin session; it is empty until one is created or selected.
// Guest sessions ignore it.
type Session struct {
	User     string `json:"user"`
	Role     Role   `json:"role"`
	Database string `json:"database,omitempty"`
}

// New returns a session for user with no tenant database selected.
func New(user string, role Role) Session {
	return Session{User: user, Role: role}
}

// WithDatabase returns a copy of s with name as the active tenant database.
func (s Session) WithDatabase(name string) Session {
	s.Database = name
	return s
}

// HasDatabase reports whether a tenant database has been selected.
func (s Session) HasDatabase() bool { return s.Database != "" }

func (s Session) String() string {
	if s.HasDatabase() {
		return fmt.Sprintf("%s (%s) on %s", s.User, s.Role, s.Database)
	}
	return fmt.Sprintf("%s (%s)", s.User, s.Role)
}
