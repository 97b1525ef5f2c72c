package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"progman/internal/devnode"
	"progman/internal/domain"
	"progman/internal/logging"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr     string
		network  string
		programs string
		verbose  bool
	)
	cmd := &cobra.Command{
		Use:          "devnode",
		Short:        "Run an in-memory development node",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New("info", verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			node, err := devnode.New(network, devnode.WithLogger(log))
			if err != nil {
				return err
			}
			if programs != "" {
				if err := preload(node, programs, log); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, addr, node.Handler(), log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":3030", "listen address")
	cmd.Flags().StringVar(&network, "network", "testnet3", "network name served under /{network}/")
	cmd.Flags().StringVar(&programs, "programs", "", "directory of *.aleo programs to deploy at startup")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

// preload deploys every *.aleo file in dir. Files are added in an order that
// puts imports first; a file whose imports never appear is an error.
func preload(node *devnode.Server, dir string, log *zap.Logger) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+domain.ProgramSuffix))
	if err != nil {
		return err
	}
	sort.Strings(paths)

	pending := make(map[string]string, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		pending[p] = string(b)
	}

	for len(pending) > 0 {
		progress := false
		var lastErr error
		for _, p := range paths {
			src, ok := pending[p]
			if !ok {
				continue
			}
			id, err := node.AddProgram(src)
			if err != nil {
				lastErr = fmt.Errorf("%s: %w", p, err)
				continue
			}
			delete(pending, p)
			progress = true
			log.Info("Program preloaded", zap.String("program", id.String()))
		}
		if !progress {
			return lastErr
		}
	}
	return nil
}

func serve(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("devnode listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
