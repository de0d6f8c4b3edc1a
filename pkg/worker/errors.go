package worker

import "errors"

var (
	// ErrNilProcessor is raised when a pool is created without a processor.
	ErrNilProcessor = errors.New("worker: processor must not be nil")
	// ErrPoolNotStarted is returned by Submit before Start.
	ErrPoolNotStarted = errors.New("worker: pool not started")
	// ErrPoolStopped is returned by Submit after Stop.
	ErrPoolStopped = errors.New("worker: pool stopped")
	// ErrStopTimeout is returned when workers do not drain in time.
	ErrStopTimeout = errors.New("worker: stop timed out")
)
