// Package resolver locates program sources and their transitive imports.
//
// Three implementations satisfy domain.Resolver:
//
//   - FileSystem reads <dir>/<id>, then <dir>/imports/<id>.
//   - Network fetches sources through a network client.
//   - Hybrid tries FileSystem first and falls back to Network only when the
//     program is not found locally. Any other local failure, including a
//     file that does not parse, is returned as is.
//
// All three share one walk: the requested program is loaded and parsed, then
// its imports are visited depth first so that the returned import list is in
// dependency order (each program after everything it imports). The fallback
// decision of Hybrid is made per program, so a local program may import
// programs that only exist on the network.
package resolver
