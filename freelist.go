package freelist

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/daniel-jones-dev/freelist/internal/arena"
	"github.com/daniel-jones-dev/freelist/internal/layout"
)

// Pool is a fixed-capacity, lock-free object pool for elements of type T.
//
// A pool reserves one contiguous block of exactly the requested byte size
// at construction and never touches the allocator again. Elements are
// addressed by pointer or by a small Index; released slots are chained
// through their own storage, so a live slot carries no per-slot metadata
// at all.
//
// Alloc, AllocFunc, Free, PushIndex, PopIndex, Get, Index, Size, Empty,
// Full and Stats are safe for concurrent use and lock-free. Clear and
// Close are single-threaded resets: no other operation may run on the pool
// while they do.
type Pool[T any] struct {
	lo   layout.Layout
	ar   *arena.Arena
	base unsafe.Pointer
	fin  func(*T)
}

// New constructs a pool occupying exactly size bytes of storage.
//
// The slot size is max(sizeof(T), index width), where the index width is
// the smallest of 1, 2, 4 or 8 bytes able to address size (see
// layout.IndexWidth). size must be a positive multiple of the slot size
// and large enough to hold at least one element past the control word.
//
// T must have a nonzero footprint and must not contain Go pointers: the
// pool's storage is untyped memory the garbage collector does not scan,
// so a pointerful element would keep nothing alive.
func New[T any](size int, opts ...Option[T]) (*Pool[T], error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typeHasPointers(typ) {
		return nil, fmt.Errorf("%w: %s", ErrReferenceType, typ)
	}

	var zero T
	lo, err := layout.Compute(size, int(unsafe.Sizeof(zero)))
	if err != nil {
		return nil, err
	}

	var cfg config[T]
	for _, opt := range opts {
		opt(&cfg)
	}

	ar, err := arena.New(size)
	if err != nil {
		return nil, err
	}
	if cfg.lockMemory {
		if err := ar.Lock(); err != nil {
			return nil, fmt.Errorf("freelist: locking pool storage: %w", err)
		}
	}

	p := &Pool[T]{
		lo:   lo,
		ar:   ar,
		base: ar.Base(),
		fin:  cfg.finalizer,
	}
	p.ctl().Store(uint64(packCtl(uint16(lo.HeaderSlots), 0, 0, 0)))
	return p, nil
}

// Alloc reserves a slot, stores v in it, and returns a pointer to the
// stored element. Returns ErrExhausted when no slot is available.
//
// The pool only linearises slot membership; it does not publish the
// element's contents to other goroutines. A caller handing the pointer to
// another goroutine must synchronise that handoff itself.
func (p *Pool[T]) Alloc(v T) (*T, error) {
	i := p.PushIndex()
	if i == 0 {
		return nil, ErrExhausted
	}
	ptr := (*T)(p.slotPtr(int(i)))
	*ptr = v
	return ptr, nil
}

// AllocFunc reserves a slot, zeroes it, and runs init on it in place. When
// init returns an error the slot is returned to the free list and the
// error is propagated unchanged: the pool's live count is exactly what it
// was before the call, though the free-list order and ABA tag may differ.
func (p *Pool[T]) AllocFunc(init func(*T) error) (*T, error) {
	i := p.PushIndex()
	if i == 0 {
		return nil, ErrExhausted
	}
	ptr := (*T)(p.slotPtr(int(i)))
	var zero T
	*ptr = zero
	if err := init(ptr); err != nil {
		p.PopIndex(i)
		return nil, err
	}
	return ptr, nil
}

// Free runs the pool finalizer (if configured) on the element and returns
// its slot to the free list. ptr must have been returned by this pool and
// still be live; a nil pointer, a foreign pointer, or a misaligned pointer
// panics.
func (p *Pool[T]) Free(ptr *T) {
	i := p.index(ptr)
	if p.fin != nil {
		p.fin(ptr)
	}
	p.PopIndex(i)
}

// Deleter returns a function that frees elements of this pool. It is the
// release callback the smart handles bind.
func (p *Pool[T]) Deleter() func(*T) {
	return p.Free
}

// Clear finalises every live element and resets the pool to its initial
// empty state. It must not run concurrently with any other operation on
// the pool.
func (p *Pool[T]) Clear() {
	c := ctlWord(p.ctl().Load())

	if p.fin != nil {
		// Anything between the header and the frontier that is not on
		// the free list is live.
		isFree := make([]bool, p.lo.SlotCount)
		for f := c.free(); f != 0; f = p.loadLink(int(f)) {
			isFree[f] = true
		}
		for i := p.lo.HeaderSlots; i < int(c.next()); i++ {
			if !isFree[i] {
				p.fin((*T)(p.slotPtr(i)))
			}
		}
	}

	p.ctl().Store(uint64(packCtl(uint16(p.lo.HeaderSlots), 0, 0, 0)))
}

// Close clears the pool and releases any locked pages. Like Clear it is
// single-threaded. The pool remains usable afterwards, though locked
// memory is not re-pinned.
func (p *Pool[T]) Close() error {
	p.Clear()
	return p.ar.Release()
}

// Size returns the number of live elements.
func (p *Pool[T]) Size() int {
	return int(ctlWord(p.ctl().Load()).count())
}

// Empty reports whether the pool holds no live elements.
func (p *Pool[T]) Empty() bool {
	return p.Size() == 0
}

// Full reports whether the live count has reached capacity.
func (p *Pool[T]) Full() bool {
	return p.Size() >= p.lo.Capacity()
}

// Capacity returns the maximum number of simultaneously-live elements.
// It is fixed at construction.
func (p *Pool[T]) Capacity() int {
	return p.lo.Capacity()
}

// StorageBytes returns the exact byte size of the pool's storage block,
// i.e. the size passed to New.
func (p *Pool[T]) StorageBytes() int {
	return p.ar.Size()
}

// typeHasPointers reports whether t contains any pointer-shaped field the
// garbage collector would need to scan.
func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
