// Package credential turns plaintext secrets into their stored
// representation and checks secrets against stored representations.
package credential

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Codec is a one-way transform over secrets. Implementations must be
// safe for concurrent use.
type Codec interface {
	Hash(secret string) (string, error)
	Verify(secret, encoded string) bool
}

// Scheme names accepted by ForScheme.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// ForScheme returns the codec for a configured scheme name. An unknown
// name is a configuration error, not a recoverable one.
func ForScheme(name string) (Codec, error) {
	switch name {
	case SchemeSHA256:
		return SHA256Codec{}, nil
	case SchemeBcrypt:
		return BcryptCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", name)
	}
}

// SHA256Codec is the legacy scheme: a single unsalted hex digest,
// deterministic and byte-exact on verify. Kept for compatibility with
// existing rows; new deployments should configure bcrypt instead.
type SHA256Codec struct{}

func (SHA256Codec) Hash(secret string) (string, error) {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:]), nil
}

func (c SHA256Codec) Verify(secret, encoded string) bool {
	h, err := c.Hash(secret)
	return err == nil && h == encoded
}
