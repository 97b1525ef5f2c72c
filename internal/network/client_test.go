package network_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"progman/internal/crypto"
	"progman/internal/devnode"
	"progman/internal/domain"
	"progman/internal/network"
	"progman/internal/protocol/transaction"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newNode(t *testing.T) (*devnode.Server, *network.Client) {
	t.Helper()
	node, err := devnode.New("testnet3")
	require.NoError(t, err)
	srv := httptest.NewServer(node.Handler())
	t.Cleanup(srv.Close)

	// A dedicated transport lets the cleanup close idle keep-alive connections.
	transport := &http.Transport{}
	t.Cleanup(transport.CloseIdleConnections)
	c, err := network.New(
		domain.NetworkConfig{Host: srv.URL, Network: "testnet3"},
		network.WithHTTPClient(&http.Client{Transport: transport, Timeout: 5 * time.Second}),
	)
	require.NoError(t, err)
	return node, c
}

func TestFetchProgram(t *testing.T) {
	node, c := newNode(t)
	ctx := context.Background()

	_, err := node.AddProgram("program hello.aleo;\nfunction main:\n")
	require.NoError(t, err)

	src, err := c.FetchProgram(ctx, "hello.aleo")
	require.NoError(t, err)
	assert.Equal(t, "program hello.aleo;\nfunction main:\n", src)

	_, err = c.FetchProgram(ctx, "missing.aleo")
	require.ErrorIs(t, err, domain.ErrProgramNotFound)
	var se *network.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestBroadcastAndFetchTransaction(t *testing.T) {
	node, c := newNode(t)
	ctx := context.Background()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	tx, err := transaction.NewExecution(key, "credits.aleo", "transfer_public",
		[]string{crypto.AddressOf(key).String(), "1u64"}, 0)
	require.NoError(t, err)

	id, err := c.BroadcastTransaction(ctx, tx)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, id)
	assert.Equal(t, 1, node.Requests(devnode.RouteBroadcast))

	got, err := c.Transaction(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, tx, got)

	h, err := c.LatestHeight(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), h)
}

func TestBroadcast_RejectionIsStatusError(t *testing.T) {
	_, c := newNode(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	tx, err := transaction.NewExecution(key, "credits.aleo", "transfer_public", nil, 0)
	require.NoError(t, err)
	tx.Signature[0] ^= 0xff

	_, err = c.BroadcastTransaction(context.Background(), tx)
	var se *network.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, http.MethodPost, se.Method)
	assert.Contains(t, se.Error(), "/testnet3/transaction/broadcast")
	assert.NotErrorIs(t, err, domain.ErrProgramNotFound)
}

func TestNew_Endpoints(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"http://127.0.0.1:3030", "http://127.0.0.1:3030/testnet3"},
		{"https://api.example.org/v1/", "https://api.example.org/v1/testnet3"},
		{"/ip4/127.0.0.1/tcp/3030/http", "http://127.0.0.1:3030/testnet3"},
		{"/dns4/api.example.org/tcp/443/https", "https://api.example.org:443/testnet3"},
		{"/dns/api.example.org/tcp/443/tls/http", "https://api.example.org:443/testnet3"},
		{"/ip6/::1/tcp/3030", "http://[::1]:3030/testnet3"},
	}
	for _, tc := range cases {
		c, err := network.New(domain.NetworkConfig{Host: tc.host})
		require.NoError(t, err, tc.host)
		assert.Equal(t, tc.want, c.Endpoint(), tc.host)
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	_, err := network.New(domain.NetworkConfig{})
	assert.ErrorIs(t, err, network.ErrNoHost)

	for _, host := range []string{"ftp://x", "localhost:3030", "/ip4/127.0.0.1", "/tcp/80", "/not-a-protocol/1"} {
		_, err := network.New(domain.NetworkConfig{Host: host})
		assert.Error(t, err, host)
	}

	_, err = network.New(domain.NetworkConfig{Host: "http://x", Network: "a/b"})
	assert.Error(t, err)
}
