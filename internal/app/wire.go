package app

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"progman/internal/config"
	"progman/internal/domain"
	"progman/internal/manager"
	"progman/internal/network"
	"progman/internal/services/account"
	"progman/internal/store"
)

// ErrNoSettings is returned when NewWire is given no configuration.
var ErrNoSettings = errors.New("app: nil settings")

// Wire bundles stores, services and settings for the CLI.
type Wire struct {
	Keys     domain.KeyStore
	Accounts domain.AccountService
	Settings *config.Config
	Log      *zap.Logger
	HTTP     *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if cfg.Settings == nil {
		return nil, ErrNoSettings
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	keys := store.NewKeyFileStore(cfg.Home)
	var opts []account.Option
	if cfg.Overwrite {
		opts = append(opts, account.WithOverwrite())
	}

	return &Wire{
		Keys:     keys,
		Accounts: account.New(keys, opts...),
		Settings: cfg.Settings,
		Log:      log,
		HTTP:     cfg.HTTP,
	}, nil
}

// Manager loads the stored account key and builds a manager for it.
// Callers must Close the result.
func (w *Wire) Manager() (*manager.Manager, error) {
	key, ct, err := w.Accounts.Load()
	if err != nil {
		return nil, err
	}
	opts := []manager.Option{manager.WithLogger(w.Log)}
	if w.HTTP != nil {
		httpClient, log := w.HTTP, w.Log
		opts = append(opts, manager.WithClientFactory(func(cfg domain.NetworkConfig) (domain.NetworkClient, error) {
			return network.New(cfg, network.WithHTTPClient(httpClient), network.WithLogger(log))
		}))
	}
	return NewManager(w.Settings, key, ct, opts...)
}

// NewManager picks the resolution factory that matches settings.
func NewManager(
	settings *config.Config,
	key *domain.PrivateKey,
	ciphertext *domain.Ciphertext,
	opts ...manager.Option,
) (*manager.Manager, error) {
	netCfg, err := settings.NetworkConfig()
	if err != nil {
		return nil, err
	}

	switch mode := settings.Mode(); mode {
	case config.ModeLocal:
		return manager.WithLocalResolution(key, ciphertext, settings.ProgramsDir(), netCfg, opts...)
	case config.ModeNetwork, config.ModeHybrid:
		if netCfg == nil {
			return nil, fmt.Errorf("%w: %s", config.ErrNeedsHost, mode)
		}
		if mode == config.ModeNetwork {
			return manager.WithNetworkResolution(key, ciphertext, *netCfg, opts...)
		}
		return manager.WithHybridResolution(key, ciphertext, settings.ProgramsDir(), *netCfg, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownMode, mode)
	}
}
