package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"progman/internal/app"
	"progman/internal/config"
	"progman/internal/devnode"
	"progman/internal/manager"
	"progman/internal/services/account"
)

const tokenSource = "program token.aleo;\n\nfunction transfer:\n    input r0 as address.public;\n    input r1 as u64.public;\n"

func newWire(t *testing.T, settings *config.Config) *app.Wire {
	t.Helper()
	transport := &http.Transport{}
	t.Cleanup(transport.CloseIdleConnections)
	w, err := app.NewWire(app.Config{
		Home:     t.TempDir(),
		Settings: settings,
		HTTP:     &http.Client{Transport: transport, Timeout: 5 * time.Second},
	})
	require.NoError(t, err)
	return w
}

func newNode(t *testing.T) (*devnode.Server, string) {
	t.Helper()
	node, err := devnode.New("testnet3")
	require.NoError(t, err)
	srv := httptest.NewServer(node.Handler())
	t.Cleanup(srv.Close)
	return node, srv.URL
}

func TestNewWire_RequiresSettings(t *testing.T) {
	_, err := app.NewWire(app.Config{Home: t.TempDir()})
	assert.ErrorIs(t, err, app.ErrNoSettings)
}

func TestWire_ManagerNeedsAccount(t *testing.T) {
	w := newWire(t, config.DefaultConfig())
	_, err := w.Manager()
	assert.ErrorIs(t, err, account.ErrNoAccount)
}

func TestWire_LocalMode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token.aleo"), []byte(tokenSource), 0o600))
	settings := config.DefaultConfig()
	settings.Programs = dir

	w := newWire(t, settings)
	_, err := w.Accounts.Generate("")
	require.NoError(t, err)

	m, err := w.Manager()
	require.NoError(t, err)
	defer m.Close()
	assert.Nil(t, m.NetworkConfig())

	p, _, err := m.ResolveProgram(context.Background(), "token.aleo")
	require.NoError(t, err)
	assert.Equal(t, tokenSource, p.Source)
}

func TestWire_NetworkAndHybridModes(t *testing.T) {
	node, url := newNode(t)
	_, err := node.AddProgram(tokenSource)
	require.NoError(t, err)

	for _, mode := range []config.Mode{config.ModeNetwork, config.ModeHybrid} {
		t.Run(string(mode), func(t *testing.T) {
			settings := config.DefaultConfig()
			settings.Resolution = mode
			settings.Programs = t.TempDir()
			settings.Network.Host = url

			w := newWire(t, settings)
			_, err := w.Accounts.Generate("")
			require.NoError(t, err)

			m, err := w.Manager()
			require.NoError(t, err)
			defer m.Close()
			require.NotNil(t, m.NetworkConfig())
			assert.Equal(t, 30*time.Second, m.NetworkConfig().Timeout)

			p, _, err := m.ResolveProgram(context.Background(), "token.aleo")
			require.NoError(t, err)
			assert.Equal(t, tokenSource, p.Source)
		})
	}
}

func TestNewManager_RejectsBadSettings(t *testing.T) {
	settings := config.DefaultConfig()
	settings.Resolution = config.ModeNetwork
	_, err := app.NewManager(settings, nil, nil)
	assert.ErrorIs(t, err, config.ErrNeedsHost)

	settings.Resolution = "sideways"
	_, err = app.NewManager(settings, nil, nil)
	assert.ErrorIs(t, err, config.ErrUnknownMode)

	settings = config.DefaultConfig()
	settings.Programs = "bad\x00dir"
	_, err = app.NewManager(settings, nil, nil)
	assert.ErrorIs(t, err, manager.ErrInvalidPath)
}
