package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"progman/internal/domain"
)

const (
	// DefaultNetwork is used when a config leaves Network empty.
	DefaultNetwork = "testnet3"
	// DefaultTimeout bounds each request when a config leaves Timeout zero.
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 512
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	URL        string
	Status     string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("network %s %s: %s", strings.ToLower(e.Method), e.URL, e.Status)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Client is an HTTP client for a network's REST endpoint.
type Client struct {
	base    string
	network string
	http    *http.Client
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is kept as is.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the client's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New builds a client from cfg.
func New(cfg domain.NetworkConfig, opts ...Option) (*Client, error) {
	base, err := baseURL(cfg.Host)
	if err != nil {
		return nil, err
	}
	network := cfg.Network
	if network == "" {
		network = DefaultNetwork
	}
	if strings.ContainsAny(network, "/?#") {
		return nil, fmt.Errorf("invalid network id %q", network)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		base:    base,
		network: network,
		http:    &http.Client{Timeout: timeout},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the base URL requests are sent to, including the network segment.
func (c *Client) Endpoint() string { return c.base + "/" + c.network }

// FetchProgram returns the source of a deployed program.
func (c *Client) FetchProgram(ctx context.Context, id domain.ProgramID) (string, error) {
	var src string
	err := c.getJSON(ctx, "/program/"+url.PathEscape(id.String()), &src)
	var se *StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrProgramNotFound, id, err)
	}
	if err != nil {
		return "", err
	}
	return src, nil
}

// BroadcastTransaction submits tx and returns the id the network accepted it under.
func (c *Client) BroadcastTransaction(ctx context.Context, tx domain.Transaction) (domain.TransactionID, error) {
	var id string
	if err := c.post(ctx, "/transaction/broadcast", tx, &id); err != nil {
		return "", err
	}
	c.log.Debug("Transaction broadcast", zap.String("tx", id), zap.String("endpoint", c.Endpoint()))
	return domain.TransactionID(id), nil
}

// Transaction fetches a transaction by id.
func (c *Client) Transaction(ctx context.Context, id domain.TransactionID) (domain.Transaction, error) {
	var tx domain.Transaction
	if err := c.getJSON(ctx, "/transaction/"+url.PathEscape(id.String()), &tx); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

// LatestHeight returns the height of the network's latest block.
func (c *Client) LatestHeight(ctx context.Context) (uint64, error) {
	var h uint64
	if err := c.getJSON(ctx, "/latest/height", &h); err != nil {
		return 0, err
	}
	return h, nil
}

func (c *Client) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint()+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint()+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Debug("Network request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     req.Method,
			URL:        req.URL.String(),
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ domain.NetworkClient = (*Client)(nil)
