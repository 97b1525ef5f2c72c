package vm

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"progman/internal/domain"
	"progman/internal/protocol/program"
	"progman/internal/protocol/transaction"
)

// CreditsProgram is the built-in program every VM starts with.
const CreditsProgram domain.ProgramID = "credits.aleo"

//go:embed credits.aleo
var creditsSource string

var (
	ErrProgramConflict = errors.New("program already loaded with different source")
	ErrMissingImport   = errors.New("imported program not loaded")
	ErrInvalidCall     = errors.New("invalid cross-program call")
	ErrNoFunctions     = errors.New("program declares no functions")
	ErrUnknownProgram  = errors.New("program not loaded")
	ErrUnknownFunction = errors.New("function not found")
	ErrInputCount      = errors.New("wrong number of inputs")
	ErrInputType       = errors.New("input does not match declared type")
)

// VM checks programs and builds signed transactions against them.
type VM struct {
	store    *Store
	programs map[domain.ProgramID]domain.Program
	log      *zap.Logger
}

// Option configures a VM.
type Option func(*VM)

// WithLogger sets the VM's logger.
func WithLogger(l *zap.Logger) Option {
	return func(v *VM) {
		if l != nil {
			v.log = l
		}
	}
}

// New binds a VM to store, loading any programs already stored and the
// built-in credits program.
func New(store *Store, opts ...Option) (*VM, error) {
	if store == nil {
		return nil, errors.New("vm: nil store")
	}
	v := &VM{
		store:    store,
		programs: make(map[domain.ProgramID]domain.Program),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}

	ctx := context.Background()
	ids, err := store.ProgramIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load programs: %w", err)
	}
	for _, id := range ids {
		src, _, err := store.ProgramSource(ctx, id)
		if err != nil {
			return nil, err
		}
		p, err := program.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("stored program %s: %w", id, err)
		}
		v.programs[id] = p
	}

	if _, ok := v.programs[CreditsProgram]; !ok {
		credits, err := Credits()
		if err != nil {
			return nil, err
		}
		if err := v.AddProgram(ctx, credits); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Credits returns the built-in credits program.
func Credits() (domain.Program, error) {
	p, err := program.Parse(creditsSource)
	if err != nil {
		return domain.Program{}, fmt.Errorf("built-in %s: %w", CreditsProgram, err)
	}
	return p, nil
}

// Contains reports whether id is loaded.
func (v *VM) Contains(id domain.ProgramID) bool {
	_, ok := v.programs[id]
	return ok
}

// Program returns a loaded program.
func (v *VM) Program(id domain.ProgramID) (domain.Program, bool) {
	p, ok := v.programs[id]
	return p, ok
}

// Check verifies that p can be loaded: its imports are present and every
// cross-program call targets an existing function of an imported program.
func (v *VM) Check(p domain.Program) error {
	if len(p.Functions) == 0 {
		return fmt.Errorf("%w: %s", ErrNoFunctions, p.ID)
	}
	for _, imp := range p.Imports {
		if !v.Contains(imp) {
			return fmt.Errorf("%w: %s imports %s", ErrMissingImport, p.ID, imp)
		}
	}
	for _, f := range p.Functions {
		for _, c := range f.Calls {
			if !p.ImportsProgram(c.Program) {
				return fmt.Errorf("%w: %s/%s calls %s which is not imported",
					ErrInvalidCall, p.ID, f.Name, c.Program)
			}
			if _, ok := v.programs[c.Program].Function(c.Function); !ok {
				return fmt.Errorf("%w: %s/%s calls unknown function %s/%s",
					ErrInvalidCall, p.ID, f.Name, c.Program, c.Function)
			}
		}
	}
	return nil
}

// AddProgram checks and loads p. Loading an identical program again is a no-op.
func (v *VM) AddProgram(ctx context.Context, p domain.Program) error {
	if existing, ok := v.programs[p.ID]; ok {
		if existing.Source == p.Source {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrProgramConflict, p.ID)
	}
	if err := v.Check(p); err != nil {
		return err
	}
	if err := v.store.PutProgram(ctx, p); err != nil {
		return err
	}
	v.programs[p.ID] = p
	v.log.Debug("Program loaded", zap.String("program", p.ID.String()), zap.Int("functions", len(p.Functions)))
	return nil
}

// Deploy loads imports (in dependency order) and p, then returns a signed
// deployment transaction for p.
func (v *VM) Deploy(
	ctx context.Context,
	key domain.PrivateKey,
	p domain.Program,
	imports []domain.Program,
	fee uint64,
) (domain.Transaction, error) {
	for _, imp := range imports {
		if err := v.AddProgram(ctx, imp); err != nil {
			return domain.Transaction{}, err
		}
	}
	if err := v.AddProgram(ctx, p); err != nil {
		return domain.Transaction{}, err
	}
	tx, err := transaction.NewDeployment(key, p, fee)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := v.store.PutTransaction(ctx, tx); err != nil {
		return domain.Transaction{}, err
	}
	v.log.Info("Deployment built", zap.String("program", p.ID.String()), zap.String("tx", tx.ID.String()))
	return tx, nil
}

// Execute returns a signed execution of id/function after checking the
// inputs against the function's declaration.
func (v *VM) Execute(
	ctx context.Context,
	key domain.PrivateKey,
	id domain.ProgramID,
	function string,
	inputs []string,
	fee uint64,
) (domain.Transaction, error) {
	p, ok := v.programs[id]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("%w: %s", ErrUnknownProgram, id)
	}
	f, ok := p.Function(function)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("%w: %s/%s", ErrUnknownFunction, id, function)
	}
	if len(inputs) != len(f.Inputs) {
		return domain.Transaction{}, fmt.Errorf("%w: %s/%s expects %d, got %d",
			ErrInputCount, id, function, len(f.Inputs), len(inputs))
	}
	for i, in := range inputs {
		if err := checkInput(in, f.Inputs[i].Type); err != nil {
			return domain.Transaction{}, fmt.Errorf("%w: %s/%s %s: %v",
				ErrInputType, id, function, f.Inputs[i].Register, err)
		}
	}

	tx, err := transaction.NewExecution(key, id, function, inputs, fee)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := v.store.PutTransaction(ctx, tx); err != nil {
		return domain.Transaction{}, err
	}
	v.log.Info("Execution built",
		zap.String("program", id.String()),
		zap.String("function", function),
		zap.String("tx", tx.ID.String()))
	return tx, nil
}

// Transaction returns a transaction previously built by this VM.
func (v *VM) Transaction(ctx context.Context, id domain.TransactionID) (domain.Transaction, bool, error) {
	return v.store.Transaction(ctx, id)
}

// Close releases the VM's store.
func (v *VM) Close() error { return v.store.Close() }
