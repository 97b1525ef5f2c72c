package interfaces

import domaintypes "progman/internal/domain/types"

// KeyStore persists the local account key, either in the clear or encrypted.
// At most one of the two forms is kept.
type KeyStore interface {
	SavePrivateKey(k domaintypes.PrivateKey) error
	SaveCiphertext(ct domaintypes.Ciphertext) error
	// LoadKey returns whichever forms are on disk. Both are nil when no key
	// has been stored.
	LoadKey() (*domaintypes.PrivateKey, *domaintypes.Ciphertext, error)
	HasKey() (bool, error)
}

// AccountService creates and reads the local account.
type AccountService interface {
	Generate(passphrase string) (domaintypes.Address, error)
	Address(passphrase string) (domaintypes.Address, error)
	Load() (*domaintypes.PrivateKey, *domaintypes.Ciphertext, error)
}
