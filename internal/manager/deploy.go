package manager

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"progman/internal/domain"
)

var (
	ErrAlreadyDeployed   = errors.New("program already deployed")
	ErrImportNotDeployed = errors.New("imported program not deployed")
)

// maxImportChecks bounds concurrent requests made while checking imports.
const maxImportChecks = 4

// DeployProgram resolves id, builds a signed deployment and broadcasts it.
// The program must not be deployed yet and all of its imports must be.
func (m *Manager) DeployProgram(
	ctx context.Context,
	id domain.ProgramID,
	fee uint64,
	password string,
) (domain.Transaction, error) {
	client, err := m.client()
	if err != nil {
		return domain.Transaction{}, err
	}

	_, err = client.FetchProgram(ctx, id)
	switch {
	case err == nil:
		return domain.Transaction{}, fmt.Errorf("%w: %s", ErrAlreadyDeployed, id)
	case !errors.Is(err, domain.ErrProgramNotFound):
		return domain.Transaction{}, err
	}

	p, imports, err := m.resolver.ResolveProgram(ctx, id)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := checkDeployed(ctx, client, imports); err != nil {
		return domain.Transaction{}, err
	}

	var tx domain.Transaction
	err = m.withKey(password, func(key domain.PrivateKey) error {
		var err error
		tx, err = m.vm.Deploy(ctx, key, p, imports, fee)
		return err
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	if _, err := client.BroadcastTransaction(ctx, tx); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

// checkDeployed fails unless every program in imports is served by the network.
func checkDeployed(ctx context.Context, client domain.ProgramFetcher, imports []domain.Program) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxImportChecks)
	for _, imp := range imports {
		g.Go(func() error {
			_, err := client.FetchProgram(gctx, imp.ID)
			if errors.Is(err, domain.ErrProgramNotFound) {
				return fmt.Errorf("%w: %s", ErrImportNotDeployed, imp.ID)
			}
			return err
		})
	}
	return g.Wait()
}
