package hotkey

// Backend is the native global hotkey capability. All methods are called
// from the worker goroutine only, on the OS thread that called Open.
type Backend interface {
	// Open connects to the native event source.
	Open() error

	// Grab reserves global delivery of mods+key and returns the id that
	// later events and Ungrab refer to.
	Grab(mods Modifier, key Key) (NativeID, error)

	// Ungrab releases a grab returned by Grab.
	Ungrab(id NativeID) error

	// Poll consumes at most one pending native event without blocking.
	// It reports false when nothing was pending or the event was not a
	// hotkey trigger.
	Poll() (Event, bool, error)

	// Close releases all remaining grabs and the native connection.
	Close() error
}
