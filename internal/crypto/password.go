package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMismatch reports that the password does not match the stored digest.
	ErrMismatch = errors.New("password mismatch")
	// ErrCorruptHash reports a stored digest bcrypt cannot parse. Callers must
	// not treat this as a wrong password; it indicates corrupted state.
	ErrCorruptHash = errors.New("corrupt password hash")
)

// Hasher wraps bcrypt with a work factor fixed at construction.
type Hasher struct {
	cost int
}

func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Hasher{cost: cost}, nil
}

func (h *Hasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify checks password against digest. bcrypt's comparison is already
// constant time with respect to the digest contents.
func (h *Hasher) Verify(digest, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return fmt.Errorf("%w: %v", ErrCorruptHash, err)
}
