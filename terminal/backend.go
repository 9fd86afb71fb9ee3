package terminal

// backend abstracts the platform terminal device
type backend interface {
	// init enters raw mode, snapshotting state for fini
	init() error

	// fini restores the snapshotted state; failure is unrecoverable
	fini() error

	// readByte reads one byte, waiting at most timeoutMs; ok=false on timeout
	readByte(timeoutMs int) (b byte, ok bool, err error)

	// write flushes a composed frame in a single call
	write(p []byte) error

	// size returns (rows, cols) via the platform query, (0, 0) on failure
	size() (rows, cols int)
}
