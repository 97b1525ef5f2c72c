package memzero_test

import (
	"bytes"
	"testing"

	"progman/internal/util/memzero"
)

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	memzero.Zero(b)
	if !bytes.Equal(b, make([]byte, 4)) {
		t.Fatalf("buffer not wiped: %v", b)
	}
	memzero.Zero(nil)
}
