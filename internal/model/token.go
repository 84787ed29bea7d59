package model

import "time"

// Claims is the authenticated-session payload carried by an access token.
type Claims struct {
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// IsAdmin reports whether the claims carry the admin role.
func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// TokenManager issues and verifies access tokens.
type TokenManager interface {
	Issue(claims Claims) (string, error)
	Parse(token string) (Claims, error)
	TTL() time.Duration
}
