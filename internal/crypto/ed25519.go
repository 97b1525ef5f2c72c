package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"

	"progman/internal/domain"
	"progman/internal/util/memzero"
)

// ErrBadSignature is returned by Verify when sig does not match msg.
var ErrBadSignature = errors.New("signature verification failed")

// GenerateKey returns a fresh private key.
func GenerateKey() (domain.PrivateKey, error) {
	var k domain.PrivateKey
	if _, err := rand.Read(k[:]); err != nil {
		return domain.PrivateKey{}, err
	}
	return k, nil
}

// AddressOf derives the address for k.
func AddressOf(k domain.PrivateKey) domain.Address {
	priv := ed25519.NewKeyFromSeed(k[:])
	defer memzero.Zero(priv)
	return domain.AddressFromPublicKey(priv.Public().(ed25519.PublicKey))
}

// Sign signs msg with k.
func Sign(k domain.PrivateKey, msg []byte) []byte {
	priv := ed25519.NewKeyFromSeed(k[:])
	defer memzero.Zero(priv)
	return ed25519.Sign(priv, msg)
}

// Verify checks sig over msg against the public key embedded in addr.
func Verify(addr domain.Address, msg, sig []byte) error {
	pub, err := addr.PublicKey()
	if err != nil {
		return err
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), msg, sig) {
		return ErrBadSignature
	}
	return nil
}
