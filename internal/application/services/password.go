package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	HashSHA256 = "sha256"
	HashBcrypt = "bcrypt"
)

// PasswordHasher hashes new passwords with the configured algorithm and
// verifies both unsalted sha256 hex digests and bcrypt hashes.
type PasswordHasher struct {
	algorithm string
	cost      int
}

// NewPasswordHasher creates a hasher for "sha256" or "bcrypt"
func NewPasswordHasher(algorithm string) (*PasswordHasher, error) {
	switch algorithm {
	case HashSHA256, HashBcrypt:
	default:
		return nil, fmt.Errorf("unsupported password hash %q", algorithm)
	}
	return &PasswordHasher{algorithm: algorithm, cost: bcrypt.DefaultCost}, nil
}

// Hash returns the stored form of password
func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.algorithm == HashBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
		if err != nil {
			return "", err
		}
		return string(hashed), nil
	}
	return sha256Hex(password), nil
}

// Verify reports whether password matches hash
func (h *PasswordHasher) Verify(hash, password string) bool {
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(hash), []byte(sha256Hex(password))) == 1
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
