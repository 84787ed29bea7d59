package model

import "fmt"

// Role is an account authorization role.
type Role string

const (
	// RoleAdmin grants access to administrative operations.
	RoleAdmin Role = "admin"
	// RoleSimpleUser is the default role assigned at registration.
	RoleSimpleUser Role = "simple_user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSimpleUser:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts s into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
	return r, nil
}
