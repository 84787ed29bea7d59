package model

import "context"

// PasswordHasher hashes and verifies passwords. Verify with an empty hash
// never matches but takes as long as a real comparison.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) bool
}
