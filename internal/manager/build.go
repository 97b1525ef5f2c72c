package manager

import (
	"context"

	"go.uber.org/zap"

	"progman/internal/domain"
)

// BuildProgram resolves id and loads it, together with its imports, into the VM.
func (m *Manager) BuildProgram(ctx context.Context, id domain.ProgramID) (domain.Program, error) {
	p, imports, err := m.resolver.ResolveProgram(ctx, id)
	if err != nil {
		return domain.Program{}, err
	}
	for _, imp := range imports {
		if err := m.vm.AddProgram(ctx, imp); err != nil {
			return domain.Program{}, err
		}
	}
	if err := m.vm.AddProgram(ctx, p); err != nil {
		return domain.Program{}, err
	}
	m.log.Info("Program built", zap.String("program", id.String()), zap.Int("imports", len(imports)))
	return p, nil
}
