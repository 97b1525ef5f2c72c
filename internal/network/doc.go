// Package network provides an HTTP implementation of the domain.NetworkClient
// interface used by progman.
//
// The client talks to a network's REST endpoint. Supported operations:
//   - Fetching a deployed program's source.
//   - Broadcasting a signed transaction.
//   - Fetching a transaction by id.
//   - Reading the latest block height.
//
// The endpoint may be given as an http(s) URL or as a multiaddr such as
// /dns4/api.example.org/tcp/443/https. All requests are JSON over HTTP and
// accept a context for cancellation and deadlines; a per-client timeout
// applies on top. Non-2xx statuses are returned as *StatusError carrying the
// HTTP method, full URL and status text. A 404 on a program fetch
// additionally matches domain.ErrProgramNotFound.
package network
