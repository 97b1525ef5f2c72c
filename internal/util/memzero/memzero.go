// Package memzero wipes sensitive buffers such as expanded signing keys and
// scrypt-derived key-encryption keys.
package memzero

import "runtime"

// Zero overwrites b with zeros. This is best-effort and aims to reduce the
// chance of the compiler eliding the write.
//
//go:noinline
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	clear(b)
	runtime.KeepAlive(&b)
}
