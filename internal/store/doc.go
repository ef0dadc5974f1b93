// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic, so business rules stay independent of any
// specific database technology.
package store
