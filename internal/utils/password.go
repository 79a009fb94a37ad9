package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/SscSPs/citizen_accounts/internal/core/ports/gateways"
	"golang.org/x/crypto/bcrypt"
)

// Supported PASSWORD_HASH_ALGORITHM values.
const (
	HashAlgorithmSHA256 = "sha256"
	HashAlgorithmBcrypt = "bcrypt"
)

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SHA256Hex returns the hex encoded SHA-256 digest of s.
func SHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// SHA256Hasher stores passwords as unsalted hex SHA-256 digests, the format of
// accounts migrated from the legacy store. Comparison is constant time.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plaintext string) (string, error) {
	return SHA256Hex(plaintext), nil
}

func (SHA256Hasher) Matches(digest, plaintext string) bool {
	return subtle.ConstantTimeCompare([]byte(digest), []byte(SHA256Hex(plaintext))) == 1
}

// BcryptHasher stores passwords as bcrypt hashes.
type BcryptHasher struct{}

func (BcryptHasher) Hash(plaintext string) (string, error) {
	return HashPassword(plaintext)
}

func (BcryptHasher) Matches(digest, plaintext string) bool {
	return CheckPasswordHash(plaintext, digest)
}

// NewPasswordHasher returns the hasher configured by name.
func NewPasswordHasher(algorithm string) (gateways.PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", HashAlgorithmSHA256:
		return SHA256Hasher{}, nil
	case HashAlgorithmBcrypt:
		return BcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("unsupported password hash algorithm %q", algorithm)
	}
}
