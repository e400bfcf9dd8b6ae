package service

// Service is the lifecycle contract for host-side infrastructure: stage
// adapters and beat sources. The engine core never implements it; only
// the parts that own external resources (a terminal, a window, a speaker)
//
// Lifecycle:
//  1. Construction (package constructor, configuration passed in)
//  2. Start() - acquire the resource, launch background goroutines
//  3. [runtime operation]
//  4. Stop() - halt goroutines, release the resource
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Start begins operation. An error means the resource could not be
	// acquired; the caller decides whether that is fatal
	Start() error

	// Stop halts operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}
