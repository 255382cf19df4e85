// Package arena provides the raw storage block backing a pool: a single
// heap allocation that exposes an exact byte length, 8-byte aligned, with
// optional page locking so a no-syscall hot path cannot page-fault. The
// allocation itself is rounded up to whole 8-byte words.
//
// The arena is allocated once and never grows. It is deliberately typed as
// a []uint64 internally: the Go runtime guarantees 8-byte alignment for
// that element type, and the garbage collector treats the block as
// pointer-free, which is exactly the contract the pool needs for storing
// plain value types and intrusive links in the same cells.
package arena

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrLockUnsupported indicates page locking is not available on this
// platform.
var ErrLockUnsupported = errors.New("arena: page locking not supported on this platform")

// Arena is a fixed block of raw storage.
type Arena struct {
	words  []uint64
	size   int
	locked bool
}

// New allocates an arena of exactly size bytes. The base address is 8-byte
// aligned. size must be positive.
func New(size int) (*Arena, error) {
	if size <= 0 {
		return nil, fmt.Errorf("arena: invalid size %d", size)
	}
	return &Arena{
		words: make([]uint64, (size+7)/8),
		size:  size,
	}, nil
}

// Base returns the address of the first byte of storage.
func (a *Arena) Base() unsafe.Pointer {
	return unsafe.Pointer(&a.words[0])
}

// Size returns the arena length in bytes.
func (a *Arena) Size() int {
	return a.size
}

// Bytes returns the storage as a byte slice of exactly Size bytes, aliasing
// the arena memory.
func (a *Arena) Bytes() []byte {
	return unsafe.Slice((*byte)(a.Base()), a.size)
}

// Lock pins the arena pages into physical memory. Returns
// ErrLockUnsupported on platforms without a locking primitive.
func (a *Arena) Lock() error {
	if a.locked {
		return nil
	}
	if err := lockPages(a.Bytes()); err != nil {
		return err
	}
	a.locked = true
	return nil
}

// Release unpins the arena pages if Lock succeeded earlier. It is safe to
// call on an unlocked arena.
func (a *Arena) Release() error {
	if !a.locked {
		return nil
	}
	a.locked = false
	return unlockPages(a.Bytes())
}
