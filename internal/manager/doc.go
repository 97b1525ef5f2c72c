// Package manager ties a signing identity, a program resolver, an ephemeral
// VM and an optional network endpoint into one handle.
//
// A Manager is built either directly with New or through one of the
// resolution factories:
//
//   - WithLocalResolution reads programs from a directory. The network
//     config is optional; without it the manager never performs network I/O.
//   - WithNetworkResolution fetches programs from the network.
//   - WithHybridResolution reads from a directory and falls back to the
//     network for programs that are not found locally.
//
// Every manager owns an in-memory VM store for its lifetime. Close releases it.
// A Manager is not safe for concurrent use.
package manager
