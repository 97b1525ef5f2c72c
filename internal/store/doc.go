// Package store provides file-based persistence for the local account key.
//
// KeyFileStore keeps either a plaintext private key (private_key) or its
// passphrase-encrypted ciphertext (private_key.enc) under the configured home
// directory, never both. Files are written atomically with mode 0600 and all
// methods are concurrency-safe via internal locking.
package store
