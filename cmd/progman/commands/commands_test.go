package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"progman/internal/domain"
)

const tokenSource = "program token.aleo;\n\nfunction transfer:\n    input r0 as address.public;\n    input r1 as u64.public;\n"

// run executes the CLI with a fresh home and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	home, configPath, passphrase, verbose, overwrite = "", "", "", false, false
	root := newRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--home", dir, "--config", filepath.Join(dir, "config.yaml")}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_OfflineFlow(t *testing.T) {
	dir := t.TempDir()
	programs := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(programs, "token.aleo"), []byte(tokenSource), 0o600))
	t.Setenv("PROGMAN_PROGRAMS", programs)

	out, err := run(t, dir, "account", "new", "-p", "Correct-Horse-9")
	require.NoError(t, err)
	assert.Contains(t, out, "Account created.")

	_, err = run(t, dir, "account", "new")
	assert.Error(t, err)

	out, err = run(t, dir, "account", "address", "-p", "Correct-Horse-9")
	require.NoError(t, err)
	assert.Contains(t, out, "addr1")

	out, err = run(t, dir, "resolve", "token.aleo")
	require.NoError(t, err)
	assert.Equal(t, tokenSource, out)

	out, err = run(t, dir, "build", "token.aleo")
	require.NoError(t, err)
	assert.Contains(t, out, "transfer (2 inputs)")

	out, err = run(t, dir, "execute", "token.aleo", "transfer", "addr1"+hex32(), "7u64", "-p", "Correct-Horse-9")
	require.NoError(t, err)
	var tx domain.Transaction
	require.NoError(t, json.Unmarshal([]byte(out), &tx))
	assert.Equal(t, domain.TransactionExecute, tx.Type)

	txPath := filepath.Join(dir, "tx.json")
	require.NoError(t, os.WriteFile(txPath, []byte(out), 0o600))
	_, err = run(t, dir, "broadcast", txPath)
	assert.ErrorContains(t, err, "no network client available")

	_, err = run(t, dir, "transfer", "addr1"+hex32(), "zero")
	assert.Error(t, err)
}

func hex32() string {
	b := make([]byte, 64)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
