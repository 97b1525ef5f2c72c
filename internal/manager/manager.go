package manager

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"progman/internal/crypto"
	"progman/internal/domain"
	"progman/internal/identity"
	"progman/internal/network"
	"progman/internal/resolver"
	"progman/internal/util/memzero"
	"progman/internal/vm"
)

var (
	ErrBothKeys        = identity.ErrBothKeys
	ErrNoKey           = identity.ErrNoKey
	ErrInvalidPath     = errors.New("path specified was not valid")
	ErrNoNetworkClient = errors.New("no network client available")
	ErrNilResolver     = errors.New("manager: nil resolver")
)

// ClientFactory builds a network client for a config.
type ClientFactory func(cfg domain.NetworkConfig) (domain.NetworkClient, error)

// StoreOpener opens the VM store at location. An empty location means a
// fresh in-memory store.
type StoreOpener func(location string) (*vm.Store, error)

type options struct {
	log       *zap.Logger
	newClient ClientFactory
	openStore StoreOpener
}

// Option configures a Manager.
type Option func(*options)

// WithLogger sets the logger used by the manager and everything it builds.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClientFactory replaces how network clients are built.
func WithClientFactory(f ClientFactory) Option {
	return func(o *options) {
		if f != nil {
			o.newClient = f
		}
	}
}

// WithStoreOpener replaces how the VM store is opened.
func WithStoreOpener(f StoreOpener) Option {
	return func(o *options) {
		if f != nil {
			o.openStore = f
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop(), openStore: vm.OpenStore}
	for _, opt := range opts {
		opt(&o)
	}
	if o.newClient == nil {
		log := o.log
		o.newClient = func(cfg domain.NetworkConfig) (domain.NetworkClient, error) {
			return network.New(cfg, network.WithLogger(log))
		}
	}
	return o
}

// Manager resolves, builds, deploys and executes programs on behalf of one identity.
type Manager struct {
	identity  domain.Identity
	network   *domain.NetworkConfig
	resolver  domain.Resolver
	vm        *vm.VM
	newClient ClientFactory
	log       *zap.Logger
}

// New returns a manager for exactly one of key and ciphertext. cfg may be nil,
// in which case the manager cannot reach a network.
func New(
	key *domain.PrivateKey,
	ciphertext *domain.Ciphertext,
	cfg *domain.NetworkConfig,
	r domain.Resolver,
	opts ...Option,
) (*Manager, error) {
	return newManager(key, ciphertext, cfg, r, buildOptions(opts))
}

func newManager(
	key *domain.PrivateKey,
	ciphertext *domain.Ciphertext,
	cfg *domain.NetworkConfig,
	r domain.Resolver,
	o options,
) (*Manager, error) {
	id, err := identity.FromParts(key, ciphertext)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNilResolver
	}

	store, err := o.openStore("")
	if err != nil {
		return nil, fmt.Errorf("failed to open vm store: %w", err)
	}
	machine, err := vm.New(store, vm.WithLogger(o.log))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize vm: %w", err)
	}

	m := &Manager{
		identity:  id,
		resolver:  r,
		vm:        machine,
		newClient: o.newClient,
		log:       o.log,
	}
	if cfg != nil {
		c := *cfg
		m.network = &c
	}
	m.log.Debug("Manager ready",
		zap.Bool("encrypted", identity.Encrypted(id)),
		zap.Bool("network", m.network != nil))
	return m, nil
}

// WithLocalResolution returns a manager resolving programs from dir.
func WithLocalResolution(
	key *domain.PrivateKey,
	ciphertext *domain.Ciphertext,
	dir string,
	cfg *domain.NetworkConfig,
	opts ...Option,
) (*Manager, error) {
	path, err := toPath(dir)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	r, err := resolver.NewFileSystem(path, resolverOptions(o)...)
	if err != nil {
		return nil, err
	}
	return newManager(key, ciphertext, cfg, r, o)
}

// WithNetworkResolution returns a manager resolving programs from the
// network described by cfg.
func WithNetworkResolution(
	key *domain.PrivateKey,
	ciphertext *domain.Ciphertext,
	cfg domain.NetworkConfig,
	opts ...Option,
) (*Manager, error) {
	o := buildOptions(opts)
	client, err := o.newClient(cfg)
	if err != nil {
		return nil, err
	}
	r := resolver.NewNetworkFromClient(client, resolverOptions(o)...)
	return newManager(key, ciphertext, &cfg, r, o)
}

// WithHybridResolution returns a manager resolving programs from dir first
// and from the network when a program is not found there.
func WithHybridResolution(
	key *domain.PrivateKey,
	ciphertext *domain.Ciphertext,
	dir string,
	cfg domain.NetworkConfig,
	opts ...Option,
) (*Manager, error) {
	path, err := toPath(dir)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	local, err := resolver.NewFileSystem(path, resolverOptions(o)...)
	if err != nil {
		return nil, err
	}
	client, err := o.newClient(cfg)
	if err != nil {
		return nil, err
	}
	remote := resolver.NewNetworkFromClient(client, resolverOptions(o)...)
	r := resolver.NewHybridFromResolvers(local, remote, resolverOptions(o)...)
	return newManager(key, ciphertext, &cfg, r, o)
}

func resolverOptions(o options) []resolver.Option {
	return []resolver.Option{
		resolver.WithLogger(o.log),
		resolver.WithProvided(vm.CreditsProgram),
	}
}

// toPath turns a user supplied directory into an absolute path.
func toPath(dir string) (string, error) {
	if dir == "" || strings.ContainsRune(dir, 0) {
		return "", ErrInvalidPath
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	return abs, nil
}

// NetworkConfig returns a copy of the manager's network config, or nil.
func (m *Manager) NetworkConfig() *domain.NetworkConfig {
	if m.network == nil {
		return nil
	}
	c := *m.network
	return &c
}

// Encrypted reports whether signing requires a password.
func (m *Manager) Encrypted() bool { return identity.Encrypted(m.identity) }

// Address returns the address of the manager's identity.
func (m *Manager) Address(password string) (domain.Address, error) {
	var addr domain.Address
	err := m.withKey(password, func(key domain.PrivateKey) error {
		addr = crypto.AddressOf(key)
		return nil
	})
	return addr, err
}

// ResolveProgram returns id and its imports from the manager's resolver.
func (m *Manager) ResolveProgram(
	ctx context.Context,
	id domain.ProgramID,
) (domain.Program, []domain.Program, error) {
	return m.resolver.ResolveProgram(ctx, id)
}

// SendTransaction broadcasts tx to the configured network. Errors from the
// network client are returned as is.
func (m *Manager) SendTransaction(ctx context.Context, tx domain.Transaction) error {
	_, err := m.broadcast(ctx, tx)
	return err
}

func (m *Manager) broadcast(ctx context.Context, tx domain.Transaction) (domain.TransactionID, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	id, err := client.BroadcastTransaction(ctx, tx)
	if err != nil {
		return "", err
	}
	m.log.Info("Transaction broadcast", zap.String("tx", id.String()), zap.String("type", string(tx.Type)))
	return id, nil
}

func (m *Manager) client() (domain.NetworkClient, error) {
	if m.network == nil {
		return nil, ErrNoNetworkClient
	}
	return m.newClient(*m.network)
}

// withKey unlocks the identity for the duration of fn and wipes the key afterwards.
func (m *Manager) withKey(password string, fn func(domain.PrivateKey) error) error {
	key, err := identity.Unlock(m.identity, password)
	if err != nil {
		return err
	}
	defer memzero.Zero(key[:])
	return fn(key)
}

// Close releases the VM store.
func (m *Manager) Close() error { return m.vm.Close() }
