package vm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"progman/internal/crypto"
	"progman/internal/domain"
	"progman/internal/protocol/program"
	"progman/internal/protocol/transaction"
	"progman/internal/vm"
)

const tokenSource = `program token.aleo;

function transfer:
    input r0 as address.public;
    input r1 as u64.public;
`

const walletSource = `import token.aleo;
program wallet.aleo;

function pay:
    input r0 as address.public;
    input r1 as u64.public;
    call token.aleo/transfer r0 r1;
`

func newVM(t *testing.T) *vm.VM {
	t.Helper()
	store, err := vm.OpenStore("")
	require.NoError(t, err)
	machine, err := vm.New(store)
	require.NoError(t, err)
	t.Cleanup(func() { _ = machine.Close() })
	return machine
}

func mustParse(t *testing.T, src string) domain.Program {
	t.Helper()
	p, err := program.Parse(src)
	require.NoError(t, err)
	return p
}

func TestNew_LoadsCredits(t *testing.T) {
	machine := newVM(t)
	credits, ok := machine.Program(vm.CreditsProgram)
	require.True(t, ok)
	f, ok := credits.Function("transfer_public")
	require.True(t, ok)
	assert.Len(t, f.Inputs, 2)
}

func TestNew_NilStore(t *testing.T) {
	_, err := vm.New(nil)
	assert.Error(t, err)
}

func TestNew_ClosedStoreFails(t *testing.T) {
	store, err := vm.OpenStore("")
	require.NoError(t, err)
	require.NoError(t, store.Close())
	_, err = vm.New(store)
	assert.Error(t, err)
}

func TestAddProgram(t *testing.T) {
	ctx := context.Background()
	machine := newVM(t)
	token := mustParse(t, tokenSource)
	wallet := mustParse(t, walletSource)

	err := machine.AddProgram(ctx, wallet)
	assert.ErrorIs(t, err, vm.ErrMissingImport)

	require.NoError(t, machine.AddProgram(ctx, token))
	require.NoError(t, machine.AddProgram(ctx, wallet))
	require.NoError(t, machine.AddProgram(ctx, token), "re-adding identical source is a no-op")

	changed := mustParse(t, tokenSource+"\nfunction burn:\n    input r0 as u64.public;\n")
	assert.ErrorIs(t, machine.AddProgram(ctx, changed), vm.ErrProgramConflict)
}

func TestCheck_InvalidCalls(t *testing.T) {
	ctx := context.Background()
	machine := newVM(t)
	require.NoError(t, machine.AddProgram(ctx, mustParse(t, tokenSource)))

	notImported := mustParse(t, "program a.aleo;\nfunction f:\n    call token.aleo/transfer r0 r1;\n")
	assert.ErrorIs(t, machine.Check(notImported), vm.ErrInvalidCall)

	unknownFn := mustParse(t, "import token.aleo;\nprogram b.aleo;\nfunction f:\n    call token.aleo/mint r0;\n")
	assert.ErrorIs(t, machine.Check(unknownFn), vm.ErrInvalidCall)

	empty := mustParse(t, "program c.aleo;\n")
	assert.ErrorIs(t, machine.Check(empty), vm.ErrNoFunctions)
}

func TestDeploy(t *testing.T) {
	ctx := context.Background()
	machine := newVM(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	wallet := mustParse(t, walletSource)
	tx, err := machine.Deploy(ctx, key, wallet, []domain.Program{mustParse(t, tokenSource)}, 5)
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionDeploy, tx.Type)
	assert.Equal(t, wallet.ID, tx.Deployment.Program)
	assert.Equal(t, walletSource, tx.Deployment.Source)
	assert.True(t, machine.Contains("token.aleo"))
	assert.True(t, machine.Contains("wallet.aleo"))
	require.NoError(t, transaction.Verify(tx))

	stored, ok, err := machine.Transaction(ctx, tx.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tx, stored)
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	machine := newVM(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	recipient := crypto.AddressOf(key).String()

	tx, err := machine.Execute(ctx, key, vm.CreditsProgram, "transfer_public", []string{recipient, "10u64"}, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionExecute, tx.Type)
	assert.Equal(t, []string{recipient, "10u64"}, tx.Execution.Inputs)
	require.NoError(t, transaction.Verify(tx))

	_, err = machine.Execute(ctx, key, "missing.aleo", "f", nil, 0)
	assert.ErrorIs(t, err, vm.ErrUnknownProgram)

	_, err = machine.Execute(ctx, key, vm.CreditsProgram, "mint", nil, 0)
	assert.ErrorIs(t, err, vm.ErrUnknownFunction)

	_, err = machine.Execute(ctx, key, vm.CreditsProgram, "transfer_public", []string{recipient}, 0)
	assert.ErrorIs(t, err, vm.ErrInputCount)

	_, err = machine.Execute(ctx, key, vm.CreditsProgram, "transfer_public", []string{recipient, "10u32"}, 0)
	assert.ErrorIs(t, err, vm.ErrInputType)

	_, err = machine.Execute(ctx, key, vm.CreditsProgram, "transfer_public", []string{"bob", "10u64"}, 0)
	assert.ErrorIs(t, err, vm.ErrInputType)
}

func TestStore_PersistentLocationReloads(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/vm.db"

	store, err := vm.OpenStore(path)
	require.NoError(t, err)
	machine, err := vm.New(store)
	require.NoError(t, err)
	require.NoError(t, machine.AddProgram(ctx, mustParse(t, tokenSource)))
	require.NoError(t, machine.Close())

	store, err = vm.OpenStore(path)
	require.NoError(t, err)
	machine, err = vm.New(store)
	require.NoError(t, err)
	defer machine.Close()
	assert.True(t, machine.Contains("token.aleo"))
	assert.True(t, machine.Contains(vm.CreditsProgram))
}
