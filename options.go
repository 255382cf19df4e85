package freelist

// Option configures a pool at construction.
type Option[T any] func(*config[T])

type config[T any] struct {
	finalizer  func(*T)
	lockMemory bool
}

// WithFinalizer installs a finalizer that runs on each element exactly
// once: inside Free (and the handle release paths) before the slot is
// relinked, and over every live element during Clear and Close.
func WithFinalizer[T any](fin func(*T)) Option[T] {
	return func(c *config[T]) {
		c.finalizer = fin
	}
}

// WithLockedMemory pins the pool storage into physical memory at
// construction, so the syscall-free hot path cannot page-fault. New fails
// if the platform has no locking primitive or the process lacks the
// required limits. Close unpins.
func WithLockedMemory[T any]() Option[T] {
	return func(c *config[T]) {
		c.lockMemory = true
	}
}
