package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"progman/internal/domain"
)

// Fingerprint returns a short hex fingerprint of an address.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(addr domain.Address) string {
	sum := sha256.Sum256([]byte(addr))
	return hex.EncodeToString(sum[:10])
}
