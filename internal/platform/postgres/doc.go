// Package postgres provides PostgreSQL-backed implementations of the
// persistence interfaces defined in internal/store, along with helpers for
// mapping database errors to the store's sentinel errors.
package postgres
