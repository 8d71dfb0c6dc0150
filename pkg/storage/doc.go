// Package storage provides the key-value capability components use for
// visitor-local state, in place of a browser's localStorage.
//
// Three backends are available:
//
//   - Memory: process-local map, the default for parsed documents and tests.
//   - File: a YAML document on disk, used by the CLI so dismissals persist
//     between runs.
//   - Cookie: per-visitor state carried in an HTTP cookie, used by the server.
package storage
