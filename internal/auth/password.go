// Package auth provides the password hashing and token primitives used by
// the auth endpoints and middleware.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen    = 16
	keyLen     = 32
	iterations = 100_000
)

var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword derives a PBKDF2-HMAC-SHA256 key from the password with a
// random salt and encodes salt||key as base64.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New)

	combined := make([]byte, 0, saltLen+keyLen)
	combined = append(combined, salt...)
	combined = append(combined, key...)
	return base64.StdEncoding.EncodeToString(combined), nil
}

// CheckPassword re-derives the key with the stored salt and compares in
// constant time. Any decoding problem counts as a mismatch.
func CheckPassword(encoded, password string) bool {
	combined, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(combined) != saltLen+keyLen {
		return false
	}
	salt, stored := combined[:saltLen], combined[saltLen:]
	key := pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New)
	return subtle.ConstantTimeCompare(key, stored) == 1
}
