// Package identity builds and unlocks the caller's signing identity.
//
// An identity is either a plaintext private key or its passphrase-encrypted
// ciphertext, never both. FromParts turns the two optional inputs accepted
// at the edges of the program into the sum type used everywhere else.
package identity

import (
	"errors"
	"fmt"

	"progman/internal/crypto"
	"progman/internal/domain"
)

var (
	ErrBothKeys = errors.New("cannot have both private key and private key ciphertext")
	ErrNoKey    = errors.New("must have either private key or private key ciphertext")
)

// FromParts returns the identity for exactly one of key and ciphertext.
func FromParts(key *domain.PrivateKey, ciphertext *domain.Ciphertext) (domain.Identity, error) {
	switch {
	case key != nil && ciphertext != nil:
		return nil, ErrBothKeys
	case key != nil:
		return domain.PlaintextIdentity{PrivateKey: *key}, nil
	case ciphertext != nil:
		return domain.EncryptedIdentity{Ciphertext: *ciphertext}, nil
	default:
		return nil, ErrNoKey
	}
}

// Unlock returns the private key for id. The passphrase is ignored for
// plaintext identities.
func Unlock(id domain.Identity, passphrase string) (domain.PrivateKey, error) {
	switch v := id.(type) {
	case domain.PlaintextIdentity:
		return v.PrivateKey, nil
	case domain.EncryptedIdentity:
		return crypto.DecryptPrivateKey(v.Ciphertext, passphrase)
	default:
		return domain.PrivateKey{}, fmt.Errorf("unsupported identity %T", id)
	}
}

// Encrypted reports whether id requires a passphrase to unlock.
func Encrypted(id domain.Identity) bool {
	_, ok := id.(domain.EncryptedIdentity)
	return ok
}
