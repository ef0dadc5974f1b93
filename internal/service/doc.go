// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the
// persistence interfaces defined in internal/store to fulfill application
// features.
//
// Services receive their dependencies through constructor injection and
// depend only on domain entities and store interfaces, never on concrete
// infrastructure, so they can be exercised in isolation with an in-memory
// store. Expected failures (such as a missing task) surface as sentinel
// errors wrapped in TaskServiceError; unexpected failures keep their
// underlying cause attached for the transport layer to classify.
package service
