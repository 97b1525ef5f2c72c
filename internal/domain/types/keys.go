package types

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	privateKeyPrefix = "pk1"
	addressPrefix    = "addr1"
	ciphertextPrefix = "ciphertext1"
)

// PrivateKey is an Ed25519 seed.
type PrivateKey [32]byte

// Slice returns the key as a []byte.
func (k PrivateKey) Slice() []byte { return k[:] }

// String returns the text form of the key.
func (k PrivateKey) String() string { return privateKeyPrefix + hex.EncodeToString(k[:]) }

// ParsePrivateKey decodes the text form produced by PrivateKey.String.
func ParsePrivateKey(s string) (PrivateKey, error) {
	var k PrivateKey
	raw, ok := strings.CutPrefix(strings.TrimSpace(s), privateKeyPrefix)
	if !ok {
		return k, fmt.Errorf("private key: missing %q prefix", privateKeyPrefix)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return k, fmt.Errorf("private key: %w", err)
	}
	if len(b) != len(k) {
		return k, fmt.Errorf("private key: want %d bytes, got %d", len(k), len(b))
	}
	copy(k[:], b)
	return k, nil
}

// Address is the public account identifier derived from a private key.
type Address string

// String returns the string form of the address.
func (a Address) String() string { return string(a) }

// PublicKey decodes the Ed25519 public key embedded in the address.
func (a Address) PublicKey() ([]byte, error) {
	raw, ok := strings.CutPrefix(string(a), addressPrefix)
	if !ok {
		return nil, fmt.Errorf("address %q: missing %q prefix", a, addressPrefix)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("address %q: %w", a, err)
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("address %q: want 32 bytes, got %d", a, len(b))
	}
	return b, nil
}

// AddressFromPublicKey formats an Ed25519 public key as an Address.
func AddressFromPublicKey(pub []byte) Address {
	return Address(addressPrefix + hex.EncodeToString(pub))
}

// Ciphertext is a private key sealed under a passphrase-derived key.
type Ciphertext struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// String returns the text form of the ciphertext.
func (c Ciphertext) String() string {
	b, _ := json.Marshal(c)
	return ciphertextPrefix + base64.RawURLEncoding.EncodeToString(b)
}

// ParseCiphertext decodes the text form produced by Ciphertext.String.
func ParseCiphertext(s string) (Ciphertext, error) {
	var c Ciphertext
	raw, ok := strings.CutPrefix(strings.TrimSpace(s), ciphertextPrefix)
	if !ok {
		return c, fmt.Errorf("ciphertext: missing %q prefix", ciphertextPrefix)
	}
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return c, fmt.Errorf("ciphertext: %w", err)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("ciphertext: %w", err)
	}
	return c, nil
}
