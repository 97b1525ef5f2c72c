// Package crypto exposes the minimal primitives used by progman.
//
// Contents
//
//   - Ed25519 key generation, address derivation, signing and verification
//     (GenerateKey, AddressOf, Sign, Verify)
//   - Passphrase encryption of private keys (EncryptPrivateKey,
//     DecryptPrivateKey) using scrypt and ChaCha20-Poly1305
//   - Short address fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Private keys are 32-byte Ed25519 seeds. Expanded signing keys only live for
// the duration of a call and are wiped before returning.
package crypto
