package password

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/dtroode/authkeeper/internal/model"
)

var _ model.PasswordHasher = (*Bcrypt)(nil)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// Bcrypt hashes passwords with bcrypt. Hashing is CPU bound, so at most
// workers hash or compare operations run at the same time.
type Bcrypt struct {
	cost  int
	sem   *semaphore.Weighted
	decoy []byte
}

// NewBcrypt creates a Bcrypt hasher with the given cost and worker limit.
// A non-positive workers value defaults to the number of CPUs.
func NewBcrypt(cost, workers int) (*Bcrypt, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	decoy, err := newDecoyHash(cost)
	if err != nil {
		return nil, err
	}

	return &Bcrypt{
		cost:  cost,
		sem:   semaphore.NewWeighted(int64(workers)),
		decoy: decoy,
	}, nil
}

// newDecoyHash hashes a random secret at cost. Comparing against it takes as
// long as comparing against a stored hash and never succeeds for user input.
func newDecoyHash(cost int) ([]byte, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate decoy secret: %w", err)
	}

	decoy, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(secret)), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to generate decoy hash: %w", err)
	}
	return decoy, nil
}

// Hash returns a salted bcrypt hash of password.
func (b *Bcrypt) Hash(ctx context.Context, password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password exceeds %d bytes", model.ErrValidation, maxPasswordBytes)
	}

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	defer b.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %v", model.ErrValidation, err)
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash or a
// cancelled context yields false. An empty hash is compared against the decoy
// so the call costs the same as a real check and still yields false.
func (b *Bcrypt) Verify(ctx context.Context, password, hash string) bool {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer b.sem.Release(1)

	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(b.decoy, []byte(password))
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Cost returns the configured work factor.
func (b *Bcrypt) Cost() int {
	return b.cost
}
