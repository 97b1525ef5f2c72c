package resolver

import (
	"context"

	"go.uber.org/zap"

	"progman/internal/domain"
	"progman/internal/network"
)

// Network resolves programs by fetching them from a network.
type Network struct {
	client domain.ProgramFetcher
	log    *zap.Logger
	skip   map[domain.ProgramID]bool
}

// NewNetwork builds a network client from cfg and resolves through it.
func NewNetwork(cfg domain.NetworkConfig, opts ...Option) (*Network, error) {
	o := buildOptions(opts)
	c, err := network.New(cfg, append([]network.Option{network.WithLogger(o.log)}, o.client...)...)
	if err != nil {
		return nil, err
	}
	return NewNetworkFromClient(c, opts...), nil
}

// NewNetworkFromClient resolves through an existing client.
func NewNetworkFromClient(c domain.ProgramFetcher, opts ...Option) *Network {
	o := buildOptions(opts)
	return &Network{client: c, log: o.log, skip: o.skip}
}

// ResolveProgram fetches id and its imports from the network.
func (r *Network) ResolveProgram(
	ctx context.Context,
	id domain.ProgramID,
) (domain.Program, []domain.Program, error) {
	return resolve(ctx, r, r.skip, id)
}

func (r *Network) load(ctx context.Context, id domain.ProgramID) (string, error) {
	src, err := r.client.FetchProgram(ctx, id)
	if err != nil {
		return "", err
	}
	r.log.Debug("Program fetched from network", zap.String("program", id.String()))
	return src, nil
}

// Compile-time assertion that Network implements domain.Resolver.
var _ domain.Resolver = (*Network)(nil)
