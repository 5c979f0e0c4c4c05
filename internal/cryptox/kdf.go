package cryptox

import (
	"crypto/sha256"

	"github.com/dmitrijs2005/fortress/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of a credential salt in bytes.
	SaltSize = 16
	// HashSize is the length of a derived password hash in bytes.
	HashSize = 32
	// DefaultIterations is the PBKDF2 round count used for credentials.
	DefaultIterations = 100_000
)

// GenerateSalt returns a fresh random credential salt.
func GenerateSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// DeriveHash stretches password with salt using PBKDF2-HMAC-SHA256 and
// returns HashSize bytes. The same inputs always produce the same output.
func DeriveHash(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, HashSize, sha256.New)
}
