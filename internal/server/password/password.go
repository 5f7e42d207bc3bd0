// Package password implements salted password hashing for user registration
// and login verification.
package password

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/matchroom/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing them changes every digest, so they are fixed
// constants rather than configuration.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	// SaltLength is the number of random bytes generated per user.
	SaltLength = 16
)

// NewSalt returns a fresh random salt for a new user record.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltLength)
}

// Hash derives a fixed-length digest from the password and salt. The result
// is deterministic for a given (password, salt) pair.
func Hash(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// Verify reports whether password hashes to digest under salt. The comparison
// is constant-time so the outcome does not leak through timing.
func Verify(password string, salt, digest []byte) bool {
	candidate := Hash(password, salt)
	return subtle.ConstantTimeCompare(candidate, digest) == 1
}
