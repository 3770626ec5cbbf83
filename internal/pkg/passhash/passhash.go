// Package passhash provides the password digest schemes supported by the
// account layer. The sha256 scheme is the storage contract inherited from the
// original deployment: an unsalted hex digest, equality-compared at login.
// The bcrypt scheme is the recommended choice for new deployments.
package passhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// Hasher turns a plaintext password into a stored hash and verifies it later.
// Deterministic hashers allow lookup by (email, hash) in a single query.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
	Deterministic() bool
}

// New returns the hasher for the configured scheme, defaulting to sha256 so
// that rows written by the original deployment keep validating.
func New(scheme string) Hasher {
	if scheme == SchemeBcrypt {
		return bcryptHasher{}
	}
	return sha256Hasher{}
}

type sha256Hasher struct{}

func (sha256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h sha256Hasher) Verify(hash, password string) bool {
	computed, _ := h.Hash(password)
	return computed == hash
}

func (sha256Hasher) Deterministic() bool { return true }

type bcryptHasher struct{}

func (bcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(b), nil
}

func (bcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (bcryptHasher) Deterministic() bool { return false }
