// Package api contains the HTTP delivery layer: request/response DTOs, chi
// handlers for the task resource, and the mapping from internal errors to
// client-facing status codes and sanitized messages.
package api
