// Package storage defines persistence interfaces for save slots.
//
// A slot holds one captured game record together with its checksum and an
// optional signature. Implementations (e.g., SQLite) live in subpackages.
//
// Common error types:
//   - ErrNotFound: requested slot is missing
package storage
