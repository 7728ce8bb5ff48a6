// Package inmemorystore provides a thread-safe, in-memory implementation
// of the trackstore.Store interface. It is suitable for development, testing,
// or any run where the custom track does not need to outlive the process.
package inmemorystore
