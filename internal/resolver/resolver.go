package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"progman/internal/domain"
	"progman/internal/network"
	"progman/internal/protocol/program"
)

var (
	// ErrNotFound is returned (wrapped) when a program or one of its imports
	// does not exist in the backing store.
	ErrNotFound        = domain.ErrProgramNotFound
	ErrPathInvalid     = errors.New("path is not a usable directory")
	ErrProgramMismatch = errors.New("source declares a different program")
	ErrImportCycle     = errors.New("import cycle")
)

// source loads the raw text of a single program.
type source interface {
	load(ctx context.Context, id domain.ProgramID) (string, error)
}

type options struct {
	log    *zap.Logger
	client []network.Option
	skip   map[domain.ProgramID]bool
}

// Option configures a resolver.
type Option func(*options)

// WithLogger sets the resolver's logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClientOptions configures the network client built by NewNetwork and NewHybrid.
func WithClientOptions(opts ...network.Option) Option {
	return func(o *options) { o.client = append(o.client, opts...) }
}

// WithProvided names programs the caller already has. Imports of these are
// neither loaded nor returned.
func WithProvided(ids ...domain.ProgramID) Option {
	return func(o *options) {
		for _, id := range ids {
			o.skip[id] = true
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop(), skip: make(map[domain.ProgramID]bool)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

type walker struct {
	src   source
	skip  map[domain.ProgramID]bool
	state map[domain.ProgramID]visitState
	stack []domain.ProgramID
	order []domain.Program
}

// resolve loads id and its transitive imports from src.
func resolve(
	ctx context.Context,
	src source,
	skip map[domain.ProgramID]bool,
	id domain.ProgramID,
) (domain.Program, []domain.Program, error) {
	w := &walker{src: src, skip: skip, state: make(map[domain.ProgramID]visitState)}
	root, err := w.fetch(ctx, id)
	if err != nil {
		return domain.Program{}, nil, err
	}
	w.state[id] = visiting
	w.stack = append(w.stack, id)
	for _, imp := range root.Imports {
		if err := w.visit(ctx, imp); err != nil {
			return domain.Program{}, nil, err
		}
	}
	return root, w.order, nil
}

func (w *walker) visit(ctx context.Context, id domain.ProgramID) error {
	if w.skip[id] {
		return nil
	}
	switch w.state[id] {
	case visited:
		return nil
	case visiting:
		return fmt.Errorf("%w: %s", ErrImportCycle, w.cycle(id))
	}
	w.state[id] = visiting
	w.stack = append(w.stack, id)

	p, err := w.fetch(ctx, id)
	if err != nil {
		return err
	}
	for _, imp := range p.Imports {
		if err := w.visit(ctx, imp); err != nil {
			return err
		}
	}

	w.stack = w.stack[:len(w.stack)-1]
	w.state[id] = visited
	w.order = append(w.order, p)
	return nil
}

func (w *walker) cycle(id domain.ProgramID) string {
	parts := make([]string, 0, len(w.stack)+1)
	start := 0
	for i, s := range w.stack {
		if s == id {
			start = i
			break
		}
	}
	for _, s := range w.stack[start:] {
		parts = append(parts, s.String())
	}
	return strings.Join(append(parts, id.String()), " -> ")
}

func (w *walker) fetch(ctx context.Context, id domain.ProgramID) (domain.Program, error) {
	if err := program.ValidateID(id); err != nil {
		return domain.Program{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Program{}, err
	}
	text, err := w.src.load(ctx, id)
	if err != nil {
		return domain.Program{}, err
	}
	p, err := program.Parse(text)
	if err != nil {
		return domain.Program{}, fmt.Errorf("parsing %s: %w", id, err)
	}
	if p.ID != id {
		return domain.Program{}, fmt.Errorf("%w: requested %s, got %s", ErrProgramMismatch, id, p.ID)
	}
	return p, nil
}
