package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"progman/internal/domain"
)

const (
	privateKeyFile = "private_key"
	ciphertextFile = "private_key.enc"
)

// KeyFileStore persists the account key to disk.
type KeyFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewKeyFileStore returns a KeyFileStore rooted at dir.
func NewKeyFileStore(dir string) *KeyFileStore {
	return &KeyFileStore{dir: dir}
}

// Dir returns the directory keys are stored in.
func (s *KeyFileStore) Dir() string { return s.dir }

// SavePrivateKey writes k in the clear and removes any stored ciphertext.
func (s *KeyFileStore) SavePrivateKey(k domain.PrivateKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFile(s.path(privateKeyFile), []byte(k.String()+"\n"), 0o600); err != nil {
		return err
	}
	return removeIfExists(s.path(ciphertextFile))
}

// SaveCiphertext writes ct and removes any stored plaintext key.
func (s *KeyFileStore) SaveCiphertext(ct domain.Ciphertext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFile(s.path(ciphertextFile), []byte(ct.String()+"\n"), 0o600); err != nil {
		return err
	}
	return removeIfExists(s.path(privateKeyFile))
}

// LoadKey reads whichever key forms exist.
func (s *KeyFileStore) LoadKey() (*domain.PrivateKey, *domain.Ciphertext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		key *domain.PrivateKey
		ct  *domain.Ciphertext
	)
	text, ok, err := readText(s.path(privateKeyFile))
	if err != nil {
		return nil, nil, err
	}
	if ok {
		k, err := domain.ParsePrivateKey(text)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", privateKeyFile, err)
		}
		key = &k
	}

	text, ok, err = readText(s.path(ciphertextFile))
	if err != nil {
		return nil, nil, err
	}
	if ok {
		c, err := domain.ParseCiphertext(text)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ciphertextFile, err)
		}
		ct = &c
	}
	return key, ct, nil
}

// HasKey reports whether any key form is stored.
func (s *KeyFileStore) HasKey() (bool, error) {
	key, ct, err := s.LoadKey()
	if err != nil {
		return false, err
	}
	return key != nil || ct != nil, nil
}

func (s *KeyFileStore) path(name string) string { return filepath.Join(s.dir, name) }

// Compile-time assertion that KeyFileStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyFileStore)(nil)
