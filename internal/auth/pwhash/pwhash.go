package pwhash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const keyLength = 32

// PasswordHasher derives and validates PBKDF2-SHA256 password hashes.
// The stored format is base64(salt) + "$" + base64(key); iteration count
// comes from configuration, not from the stored value.
type PasswordHasher struct {
	saltSize   int
	iterations int
}

func New(saltSize, iterations int) (*PasswordHasher, error) {
	if saltSize <= 0 {
		return nil, fmt.Errorf("salt size must be positive, got %d", saltSize)
	}
	if iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", iterations)
	}
	return &PasswordHasher{saltSize: saltSize, iterations: iterations}, nil
}

// HashPassword returns the salted hash for the given password. Each call
// uses a fresh random salt.
func (ph *PasswordHasher) HashPassword(password string) (string, error) {
	salt := make([]byte, ph.saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cannot generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, ph.iterations, keyLength, sha256.New)

	return base64.RawStdEncoding.EncodeToString(salt) + "$" +
		base64.RawStdEncoding.EncodeToString(key), nil
}

// Validate checks the password against a stored hash. The comparison is
// constant time.
func (ph *PasswordHasher) Validate(password, hash string) error {
	parts := strings.SplitN(hash, "$", 2)
	if len(parts) != 2 {
		return fmt.Errorf("malformed password hash")
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		return fmt.Errorf("malformed salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return fmt.Errorf("malformed key: %w", err)
	}

	got := pbkdf2.Key([]byte(password), salt, ph.iterations, keyLength, sha256.New)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return fmt.Errorf("password mismatch")
	}
	return nil
}
