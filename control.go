package freelist

import (
	"fmt"
	"sync/atomic"
)

// ctlWord is the packed pool state: four 16-bit fields in one uint64, read
// and written only as a whole through the atomic control word that overlaps
// the first slots of the arena.
//
// Bit layout (low to high):
//
//	0..15   next   first slot index never yet handed out (the frontier)
//	16..31  count  number of live slots
//	32..47  free   head of the intrusive free list, 0 = empty
//	48..63  tag    monotonically-incrementing ABA counter
//
// Bundling all mutable state into one CAS target is what makes the
// protocol correct: free, count and the frontier can never be observed in
// mutually inconsistent states, and the tag rides along in the same
// compare so a recycled free head is never mistaken for an unchanged one.
type ctlWord uint64

func packCtl(next, count, free, tag uint16) ctlWord {
	return ctlWord(uint64(next) | uint64(count)<<16 | uint64(free)<<32 | uint64(tag)<<48)
}

func (c ctlWord) next() uint16  { return uint16(c) }
func (c ctlWord) count() uint16 { return uint16(c >> 16) }
func (c ctlWord) free() uint16  { return uint16(c >> 32) }
func (c ctlWord) tag() uint16   { return uint16(c >> 48) }

// ctl returns the control word, which lives in the header slots of the
// arena itself. The arena base is 8-byte aligned, so the cast is valid.
func (p *Pool[T]) ctl() *atomic.Uint64 {
	return (*atomic.Uint64)(p.base)
}

// PushIndex reserves a slot and returns its index without initialising the
// element, or 0 if the pool is exhausted. Safe for concurrent use.
//
// Reservation prefers the free list; only when it is empty does the
// frontier advance. Claiming the free head must re-read the successor link
// stored inside that slot, and that read may observe garbage when another
// goroutine pops the same head and starts writing element data into it
// concurrently. The proposal built from such a stale read is discarded: the
// competing pop bumped the tag, so this CAS cannot succeed.
func (p *Pool[T]) PushIndex() Index {
	ctl := p.ctl()
	for {
		c := ctlWord(ctl.Load())

		if f := c.free(); f != 0 {
			succ := p.loadLink(int(f))
			next := packCtl(c.next(), c.count()+1, succ, c.tag()+1)
			if ctl.CompareAndSwap(uint64(c), uint64(next)) {
				return Index(f)
			}
			continue
		}

		if n := c.next(); int(n) < p.lo.SlotCount {
			// Frontier claim. The free list was observed empty, so no
			// slot contents were read and the tag stays put.
			next := packCtl(n+1, c.count()+1, 0, c.tag())
			if ctl.CompareAndSwap(uint64(c), uint64(next)) {
				return Index(n)
			}
			continue
		}

		return 0
	}
}

// PopIndex links slot i back into the free list without finalising the
// element. i must have been returned by PushIndex and still be live; a
// pool-range violation or a release on an empty pool panics. Safe for
// concurrent use.
func (p *Pool[T]) PopIndex(i Index) {
	p.mustSlot(i)
	ctl := p.ctl()
	for {
		c := ctlWord(ctl.Load())
		if c.count() == 0 {
			panic(fmt.Sprintf("freelist: release of slot %d with no live slots", i))
		}
		if uint16(i) >= c.next() {
			panic(fmt.Sprintf("freelist: release of slot %d beyond the frontier %d", i, c.next()))
		}

		// The successor link is written into the slot before the CAS.
		// It only becomes reachable if this CAS succeeds, and the CAS
		// publishing the new head also publishes this write.
		p.storeLink(int(i), c.free())

		next := packCtl(c.next(), c.count()-1, uint16(i), c.tag()+1)
		if ctl.CompareAndSwap(uint64(c), uint64(next)) {
			return
		}
	}
}
