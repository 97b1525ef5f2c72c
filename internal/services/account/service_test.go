package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"progman/internal/crypto"
	"progman/internal/store"
)

const strong = "Correct-Horse-9"

func TestIsSecurePassphrase(t *testing.T) {
	cases := map[string]bool{
		"":                false,
		"short-A1":        false,
		"alllowercase-12": false,
		"NoDigitsHere!!":  false,
		"NoSymbols12345":  false,
		strong:            true,
	}
	for in, want := range cases {
		assert.Equal(t, want, isSecurePassphrase(in), in)
	}
}

func TestGenerate_Encrypted(t *testing.T) {
	svc := New(store.NewKeyFileStore(t.TempDir()))

	_, err := svc.Generate("weak")
	require.ErrorIs(t, err, ErrWeakPassphrase)

	addr, err := svc.Generate(strong)
	require.NoError(t, err)

	key, ct, err := svc.Load()
	require.NoError(t, err)
	assert.Nil(t, key)
	require.NotNil(t, ct)

	got, err := svc.Address(strong)
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	_, err = svc.Address("Wrong-Horse-99")
	assert.ErrorIs(t, err, crypto.ErrWrongPassphrase)
}

func TestGenerate_Plaintext(t *testing.T) {
	svc := New(store.NewKeyFileStore(t.TempDir()))
	addr, err := svc.Generate("")
	require.NoError(t, err)

	key, ct, err := svc.Load()
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Nil(t, ct)
	assert.Equal(t, addr, crypto.AddressOf(*key))

	got, err := svc.Address("ignored")
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}

func TestGenerate_RefusesOverwrite(t *testing.T) {
	home := t.TempDir()
	first, err := New(store.NewKeyFileStore(home)).Generate("")
	require.NoError(t, err)

	_, err = New(store.NewKeyFileStore(home)).Generate("")
	assert.ErrorIs(t, err, ErrAccountExists)

	second, err := New(store.NewKeyFileStore(home), WithOverwrite()).Generate(strong)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	key, ct, err := New(store.NewKeyFileStore(home)).Load()
	require.NoError(t, err)
	assert.Nil(t, key)
	assert.NotNil(t, ct)
}

func TestLoad_NoAccount(t *testing.T) {
	_, _, err := New(store.NewKeyFileStore(t.TempDir())).Load()
	assert.ErrorIs(t, err, ErrNoAccount)
}
