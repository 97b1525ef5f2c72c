package types

// Identity is the caller's signing material: exactly one of PlaintextIdentity
// or EncryptedIdentity.
type Identity interface {
	isIdentity()
}

// PlaintextIdentity holds a usable private key.
type PlaintextIdentity struct {
	PrivateKey PrivateKey
}

// EncryptedIdentity holds a private key that must be unlocked with a
// passphrase before signing.
type EncryptedIdentity struct {
	Ciphertext Ciphertext
}

func (PlaintextIdentity) isIdentity() {}
func (EncryptedIdentity) isIdentity() {}
