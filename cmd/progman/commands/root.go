package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"progman/internal/app"
	"progman/internal/config"
	"progman/internal/logging"
	"progman/internal/manager"
)

var (
	home       string
	configPath string
	passphrase string
	verbose    bool

	logger *zap.Logger
	wire   *app.Wire
)

// Execute runs the CLI with ctx as the root context.
func Execute(ctx context.Context) error {
	return newRoot().ExecuteContext(ctx)
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "progman",
		Short:        "Resolve, build, deploy and execute programs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".progman")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			if configPath == "" {
				configPath = filepath.Join(home, config.FileName)
			}

			settings, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger, err = logging.New(settings.Logging.Level, verbose)
			if err != nil {
				return err
			}
			wire, err = app.NewWire(app.Config{
				Home:      home,
				Settings:  settings,
				Log:       logger,
				Overwrite: overwrite,
			})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "key and config dir (default ~/.progman)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the account key")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		accountCmd(),
		resolveCmd(),
		buildCmd(),
		deployCmd(),
		executeCmd(),
		transferCmd(),
		broadcastCmd(),
	)
	return root
}

// withManager builds a manager for the stored account, runs fn and closes it.
func withManager(fn func(m *manager.Manager) error) error {
	m, err := wire.Manager()
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
