package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"progman/internal/domain"
	"progman/internal/util/memzero"
)

const (
	// The current supported version of the ciphertext format.
	ciphertextVersion = 1
	saltBytes         = 16
)

var (
	// Returned when the passphrase is incorrect or the ciphertext has been modified / corrupted.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted private key ciphertext")
	// Returned when a ciphertext is required to be unlocked without a passphrase.
	ErrPassphraseRequired = errors.New("passphrase required to decrypt private key ciphertext")
)

// EncryptPrivateKey derives a key from passphrase and seals k.
func EncryptPrivateKey(passphrase string, k domain.PrivateKey) (domain.Ciphertext, error) {
	if passphrase == "" {
		return domain.Ciphertext{}, ErrPassphraseRequired
	}
	N, r, p := scryptParamsDefault()
	return seal(passphrase, k, N, r, p)
}

func seal(passphrase string, k domain.PrivateKey, N, r, p int) (domain.Ciphertext, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return domain.Ciphertext{}, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt, N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return domain.Ciphertext{}, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return domain.Ciphertext{}, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key guarantees uniqueness
	return domain.Ciphertext{
		V:      ciphertextVersion,
		Salt:   salt,
		N:      N,
		R:      r,
		P:      p,
		Cipher: aead.Seal(nil, nonce[:], k[:], salt),
	}, nil
}

// DecryptPrivateKey opens ct using a key derived from passphrase.
func DecryptPrivateKey(ct domain.Ciphertext, passphrase string) (domain.PrivateKey, error) {
	if passphrase == "" {
		return domain.PrivateKey{}, ErrPassphraseRequired
	}
	if ct.V > ciphertextVersion {
		return domain.PrivateKey{}, fmt.Errorf("unsupported ciphertext version %d", ct.V)
	}
	key, err := scrypt.Key([]byte(passphrase), ct.Salt, ct.N, ct.R, ct.P, chacha20poly1305.KeySize)
	if err != nil {
		return domain.PrivateKey{}, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return domain.PrivateKey{}, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], ct.Cipher, ct.Salt)
	if err != nil {
		return domain.PrivateKey{}, ErrWrongPassphrase
	}
	defer memzero.Zero(pt)

	var k domain.PrivateKey
	if len(pt) != len(k) {
		return domain.PrivateKey{}, ErrWrongPassphrase
	}
	copy(k[:], pt)
	return k, nil
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
