package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vobe/staff-auth-service/application/port/outbound"
)

var ErrEmptyPassword = errors.New("password cannot be empty")

type BcryptPasswordService struct {
	cost int
}

// NewBcryptPasswordService falls back to bcrypt.DefaultCost when cost is out
// of bcrypt's accepted range.
func NewBcryptPasswordService(cost int) *BcryptPasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordService{
		cost: cost,
	}
}

func (s *BcryptPasswordService) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > outbound.MaxPasswordBytes {
		return "", outbound.ErrPasswordTooLong
	}

	// Callers add their own context to the error.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}

	return string(hashedPassword), nil
}

// VerifyPassword reports whether password matches hash. A mismatch is
// (false, nil); a malformed hash is (false, err).
func (s *BcryptPasswordService) VerifyPassword(password, hash string) (bool, error) {
	if password == "" {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to compare passwords: %w", err)
	}

	return true, nil
}
