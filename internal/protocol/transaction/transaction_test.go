package transaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"progman/internal/crypto"
	"progman/internal/domain"
	"progman/internal/protocol/transaction"
)

func TestExecution_SignAndVerify(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	tx, err := transaction.NewExecution(key, "credits.aleo", "transfer_public", []string{"a", "1u64"}, 10)
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionExecute, tx.Type)
	assert.Equal(t, crypto.AddressOf(key), tx.Owner)
	assert.NotEmpty(t, tx.Nonce)
	assert.Len(t, tx.ID, 64)
	require.NoError(t, transaction.Verify(tx))

	tampered := tx
	tampered.Fee = 11
	assert.ErrorIs(t, transaction.Verify(tampered), transaction.ErrIDMismatch)
}

func TestDeployment_SignAndVerify(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	p := domain.Program{ID: "hello.aleo", Source: "program hello.aleo;\n"}
	tx, err := transaction.NewDeployment(key, p, 0)
	require.NoError(t, err)
	require.NoError(t, transaction.Verify(tx))

	// A signature by a key other than the owner is rejected.
	other, err := crypto.GenerateKey()
	require.NoError(t, err)
	forged := tx
	forged.Signature = crypto.Sign(other, []byte("x"))
	assert.ErrorIs(t, transaction.Verify(forged), crypto.ErrBadSignature)
}

func TestNonceMakesIDsUnique(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	a, err := transaction.NewExecution(key, "credits.aleo", "f", nil, 0)
	require.NoError(t, err)
	b, err := transaction.NewExecution(key, "credits.aleo", "f", nil, 0)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestVerify_Malformed(t *testing.T) {
	assert.ErrorIs(t, transaction.Verify(domain.Transaction{Type: "bogus"}), transaction.ErrMalformed)
	assert.ErrorIs(t, transaction.Verify(domain.Transaction{Type: domain.TransactionDeploy}), transaction.ErrMalformed)
}
