// Package freelist provides a fixed-capacity, intrusive, lock-free object
// pool. A pool reserves one contiguous storage block at construction and
// thereafter services every allocation and release without touching the
// system allocator.
//
// # Layout
//
// The storage is an array of slot-sized cells, where the slot size is
// max(sizeof(T), index width). A packed control word - frontier, live
// count, free-list head and an ABA tag in one uint64 - physically occupies
// the first cells of the same storage, so the block's byte length is
// exactly the size requested and slot 0 can serve as the "no slot"
// sentinel. Released slots store the index of their free-list successor in
// their own first bytes; a live slot carries no metadata at all.
//
// # Concurrency
//
// Reservation and release are each a single compare-and-swap loop over the
// control word. The tag is bumped by every operation that observed
// free-list contents, so a head that was popped, recycled and pushed back
// between a read and its CAS can never satisfy the compare. All operations
// except Clear and Close are safe for concurrent use and lock-free; none
// of them blocks or issues a system call.
//
// The pool linearises slot membership only. Element contents written after
// Alloc returns are not published to other goroutines; callers hand
// elements across goroutines with their own synchronisation.
//
// # Usage
//
//	pool, err := freelist.New[float64](8000)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	v, err := pool.Alloc(3.14)
//	if err != nil {
//	    return err // freelist.ErrExhausted when full
//	}
//	defer pool.Free(v)
//
// Unique and Shared handles bind the release to a handle lifetime, and
// Allocator exposes the pool as a raw slot allocator for container-style
// consumers.
//
// # Errors
//
// Exhaustion is reported as ErrExhausted (or the 0 sentinel from
// PushIndex) and is recoverable. Initialiser errors from AllocFunc roll
// the reservation back and propagate unchanged. Precondition violations -
// an out-of-range index, a pointer the pool does not own, a misaligned
// pointer, a release on an empty pool - panic.
package freelist
