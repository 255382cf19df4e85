package freelist

import "fmt"

// Allocator is the raw-storage allocation interface exposed by a pool. It
// separates storage reservation from element initialisation the way
// container allocators do: Allocate hands out uninitialised slots and
// Deallocate relinks them without running the finalizer.
type Allocator[T any] interface {
	// Allocate reserves storage for n elements and returns a pointer to
	// the first. The pool cannot service contiguous multi-element
	// requests, so any n other than 1 fails with ErrExhausted, as does
	// a full pool.
	Allocate(n int) (*T, error)

	// Deallocate returns the slot at p to the free list. n must match
	// the corresponding Allocate call, i.e. 1.
	Deallocate(p *T, n int)
}

// Allocator returns an adaptor exposing this pool through the Allocator
// interface. All adaptors of one pool share its slots.
func (p *Pool[T]) Allocator() Allocator[T] {
	return poolAllocator[T]{p}
}

type poolAllocator[T any] struct {
	p *Pool[T]
}

func (a poolAllocator[T]) Allocate(n int) (*T, error) {
	if n != 1 {
		return nil, fmt.Errorf("%w: cannot service %d contiguous elements", ErrExhausted, n)
	}
	i := a.p.PushIndex()
	if i == 0 {
		return nil, ErrExhausted
	}
	return (*T)(a.p.slotPtr(int(i))), nil
}

func (a poolAllocator[T]) Deallocate(ptr *T, _ int) {
	a.p.PopIndex(a.p.index(ptr))
}

// Compile-time interface check
var _ Allocator[int] = poolAllocator[int]{}
