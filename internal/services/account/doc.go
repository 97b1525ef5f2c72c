// Package account manages creation, encryption and loading of the local account key.
//
// It enforces passphrase policy, generates Ed25519 signing keys, and
// persists them via the domain.KeyStore. A key generated with a passphrase
// is only ever stored as ciphertext.
package account
