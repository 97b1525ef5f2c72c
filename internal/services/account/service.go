package account

import (
	"errors"
	"fmt"
	"unicode"

	"progman/internal/crypto"
	"progman/internal/domain"
	"progman/internal/identity"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
	ErrAccountExists = errors.New("an account key already exists")
	ErrNoAccount     = errors.New("no account key found; run 'account new' first")
)

// Service manages the account key using a backing store.
type Service struct {
	store     domain.KeyStore
	overwrite bool
}

// Option configures a Service.
type Option func(*Service)

// WithOverwrite lets Generate replace an existing key.
func WithOverwrite() Option {
	return func(s *Service) { s.overwrite = true }
}

// New returns an account service backed by the given store.
func New(s domain.KeyStore, opts ...Option) *Service {
	svc := &Service{store: s}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Generate creates a new key and saves it. With a non-empty passphrase only
// the encrypted form is stored. It returns the new account address.
func (s *Service) Generate(passphrase string) (domain.Address, error) {
	if passphrase != "" && !isSecurePassphrase(passphrase) {
		return "", ErrWeakPassphrase
	}
	if !s.overwrite {
		exists, err := s.store.HasKey()
		if err != nil {
			return "", err
		}
		if exists {
			return "", ErrAccountExists
		}
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return "", err
	}
	addr := crypto.AddressOf(key)

	if passphrase == "" {
		if err := s.store.SavePrivateKey(key); err != nil {
			return "", err
		}
		return addr, nil
	}
	ct, err := crypto.EncryptPrivateKey(passphrase, key)
	if err != nil {
		return "", err
	}
	if err := s.store.SaveCiphertext(ct); err != nil {
		return "", err
	}
	return addr, nil
}

// Address unlocks the stored key and returns its address. The passphrase is
// ignored for plaintext keys.
func (s *Service) Address(passphrase string) (domain.Address, error) {
	key, ct, err := s.Load()
	if err != nil {
		return "", err
	}
	id, err := identity.FromParts(key, ct)
	if err != nil {
		return "", err
	}
	k, err := identity.Unlock(id, passphrase)
	if err != nil {
		return "", err
	}
	return crypto.AddressOf(k), nil
}

// Load returns the stored key parts, failing with ErrNoAccount when there are none.
func (s *Service) Load() (*domain.PrivateKey, *domain.Ciphertext, error) {
	key, ct, err := s.store.LoadKey()
	if err != nil {
		return nil, nil, err
	}
	if key == nil && ct == nil {
		return nil, nil, ErrNoAccount
	}
	return key, ct, nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.AccountService.
var _ domain.AccountService = (*Service)(nil)
