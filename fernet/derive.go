package fernet

import (
	"fmt"

	"github.com/tink-crypto/tink-go/v2/subtle/random"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the salt length accepted by DeriveKey.
const SaltSize = 16

// KDFParams holds Argon2id cost parameters.
type KDFParams struct {
	Time    uint32 // iterations
	Memory  uint32 // in KiB
	Threads uint8
}

// DefaultKDFParams returns the parameters used when none are configured.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:    3,
		Memory:  64 * 1024,
		Threads: 4,
	}
}

// NewSalt returns a random salt for DeriveKey.
func NewSalt() []byte {
	return random.GetRandomBytes(SaltSize)
}

// DeriveKey derives a Fernet key from a passphrase using Argon2id. The same
// passphrase, salt and parameters always yield the same key.
func DeriveKey(passphrase, salt []byte, p KDFParams) (*Key, error) {
	if len(passphrase) == 0 {
		return nil, &KeyError{Reason: "passphrase cannot be empty"}
	}
	if len(salt) != SaltSize {
		return nil, &KeyError{Reason: fmt.Sprintf("salt must be %d bytes, got %d", SaltSize, len(salt))}
	}
	if p.Time < 1 || p.Threads < 1 || p.Memory < 8*uint32(p.Threads) {
		return nil, &KeyError{Reason: "invalid argon2 parameters"}
	}

	raw := argon2.IDKey(passphrase, salt, p.Time, p.Memory, p.Threads, KeySize)
	defer ZeroBytes(raw)
	return NewKey(raw)
}
