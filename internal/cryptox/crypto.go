// Package cryptox implements the password key derivation used by the
// credential store.
package cryptox

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// Derivation parameters are fixed: changing any of them would invalidate
// every stored digest.
const (
	passwordSalt       = "salt"
	passwordIterations = 100000
	passwordKeyLength  = 64
)

// HashPassword derives a hex-encoded PBKDF2-SHA512 digest from the given
// password. The derivation is deterministic, so the same function serves
// both storing and verifying credentials.
func HashPassword(password string) string {
	key := pbkdf2.Key([]byte(password), []byte(passwordSalt), passwordIterations, passwordKeyLength, sha512.New)
	return hex.EncodeToString(key)
}

// VerifyPassword reports whether password hashes to the stored digest.
// The comparison is constant-time.
func VerifyPassword(digest, password string) bool {
	candidate := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(candidate)) == 1
}
