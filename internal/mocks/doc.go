// Package mocks provides hand-written test doubles for the persistence
// interfaces. The task store mock defaults to an in-memory implementation
// with insertion-order listing so service and handler tests run without a
// database.
package mocks
