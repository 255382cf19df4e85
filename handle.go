package freelist

import (
	"fmt"
	"sync/atomic"
)

// Unique is a single-owner handle to a pooled element. The zero Unique is
// released. Unique values must not be copied after first use; pass the
// pointer, or move with explicit Release.
type Unique[T any] struct {
	pool *Pool[T]
	ptr  *T
}

// NewUnique allocates an element holding v and returns an owning handle
// bound to this pool's release path.
func (p *Pool[T]) NewUnique(v T) (Unique[T], error) {
	ptr, err := p.Alloc(v)
	if err != nil {
		return Unique[T]{}, err
	}
	return Unique[T]{pool: p, ptr: ptr}, nil
}

// Get returns the owned element, or nil after Release.
func (u *Unique[T]) Get() *T {
	return u.ptr
}

// Release frees the owned element. Further calls are no-ops.
func (u *Unique[T]) Release() {
	if u.ptr == nil {
		return
	}
	ptr := u.ptr
	u.ptr = nil
	pool := u.pool
	u.pool = nil
	pool.Free(ptr)
}

// Shared is a reference-counted handle to a pooled element. The count
// lives outside the pool storage; when it drops to zero the element is
// freed through the pool's release path.
type Shared[T any] struct {
	pool *Pool[T]
	ptr  *T
	refs atomic.Int32
}

// NewShared allocates an element holding v and returns a shared handle
// with a reference count of one.
func (p *Pool[T]) NewShared(v T) (*Shared[T], error) {
	ptr, err := p.Alloc(v)
	if err != nil {
		return nil, err
	}
	s := &Shared[T]{pool: p, ptr: ptr}
	s.refs.Store(1)
	return s, nil
}

// Get returns the shared element, or nil once all references are released.
func (s *Shared[T]) Get() *T {
	return s.ptr
}

// Refs returns the current reference count.
func (s *Shared[T]) Refs() int {
	return int(s.refs.Load())
}

// Clone adds a reference and returns the same handle. Cloning a fully
// released handle panics.
func (s *Shared[T]) Clone() *Shared[T] {
	if s.refs.Add(1) <= 1 {
		panic("freelist: Clone of released shared handle")
	}
	return s
}

// Release drops one reference; the last drop frees the element. Releasing
// more times than the handle was referenced panics.
func (s *Shared[T]) Release() {
	n := s.refs.Add(-1)
	switch {
	case n > 0:
		return
	case n < 0:
		panic(fmt.Sprintf("freelist: shared handle over-released (count %d)", n))
	}
	ptr := s.ptr
	s.ptr = nil
	s.pool.Free(ptr)
}
