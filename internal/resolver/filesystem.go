package resolver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"progman/internal/domain"
)

const importsDir = "imports"

// FileSystem resolves programs from a local directory.
type FileSystem struct {
	dir  string
	log  *zap.Logger
	skip map[domain.ProgramID]bool
}

// NewFileSystem returns a resolver rooted at dir. It fails with
// ErrPathInvalid unless dir is an existing, readable directory.
func NewFileSystem(dir string, opts ...Option) (*FileSystem, error) {
	o := buildOptions(opts)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPathInvalid, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrPathInvalid, dir)
	}
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPathInvalid, dir, err)
	}
	_ = f.Close()
	return &FileSystem{dir: dir, log: o.log, skip: o.skip}, nil
}

// Dir returns the directory programs are read from.
func (r *FileSystem) Dir() string { return r.dir }

// ResolveProgram reads id and its imports from the directory tree.
func (r *FileSystem) ResolveProgram(
	ctx context.Context,
	id domain.ProgramID,
) (domain.Program, []domain.Program, error) {
	return resolve(ctx, r, r.skip, id)
}

func (r *FileSystem) load(_ context.Context, id domain.ProgramID) (string, error) {
	for _, path := range []string{
		filepath.Join(r.dir, id.String()),
		filepath.Join(r.dir, importsDir, id.String()),
	} {
		b, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		r.log.Debug("Program read from disk", zap.String("program", id.String()), zap.String("path", path))
		return string(b), nil
	}
	return "", fmt.Errorf("%w: %s in %s", ErrNotFound, id, r.dir)
}

// Compile-time assertion that FileSystem implements domain.Resolver.
var _ domain.Resolver = (*FileSystem)(nil)
