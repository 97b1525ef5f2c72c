package types

import "time"

// NetworkConfig describes how to reach a network's API endpoint.
type NetworkConfig struct {
	// Host is an http(s) URL or a multiaddr such as /dns4/api.example.org/tcp/443/https.
	Host string `json:"host" yaml:"host"`
	// Network is the network identifier used as the first path segment, e.g. "testnet3".
	Network string        `json:"network" yaml:"network"`
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}
