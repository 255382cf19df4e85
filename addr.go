package freelist

import (
	"fmt"
	"unsafe"
)

// Index addresses a slot within a pool. Slot 0 always falls inside the
// header and is reserved as the "no slot" sentinel.
type Index uint16

// slotPtr returns the address of slot i. Callers validate i first.
func (p *Pool[T]) slotPtr(i int) unsafe.Pointer {
	return unsafe.Add(p.base, i*p.lo.SlotSize)
}

// loadLink reads the successor index stored inside free-listed slot i. The
// stored width follows the layout's index width; values always fit the
// 16-bit control-word field.
func (p *Pool[T]) loadLink(i int) uint16 {
	ptr := p.slotPtr(i)
	switch p.lo.IndexWidth {
	case 1:
		return uint16(*(*uint8)(ptr))
	case 2:
		return *(*uint16)(ptr)
	case 4:
		return uint16(*(*uint32)(ptr))
	default:
		return uint16(*(*uint64)(ptr))
	}
}

// storeLink writes the successor index into slot i.
func (p *Pool[T]) storeLink(i int, v uint16) {
	ptr := p.slotPtr(i)
	switch p.lo.IndexWidth {
	case 1:
		*(*uint8)(ptr) = uint8(v)
	case 2:
		*(*uint16)(ptr) = v
	case 4:
		*(*uint32)(ptr) = uint32(v)
	default:
		*(*uint64)(ptr) = uint64(v)
	}
}

// mustSlot panics unless i addresses an element slot.
func (p *Pool[T]) mustSlot(i Index) {
	if !p.lo.ValidSlot(int(i)) {
		panic(fmt.Sprintf("freelist: index %d out of range [%d,%d)",
			i, p.lo.HeaderSlots, p.lo.SlotCount))
	}
}

// Get returns a pointer to the element in slot i. The slot's contents are
// whatever the caller last stored there; Get performs no initialisation.
// An index outside [headerSlots, slotCount) panics.
func (p *Pool[T]) Get(i Index) *T {
	p.mustSlot(i)
	return (*T)(p.slotPtr(int(i)))
}

// Index recovers the slot index of a pointer previously returned by this
// pool. A pointer outside the pool storage, not on a slot boundary, or
// aimed at a header slot panics.
func (p *Pool[T]) Index(ptr *T) Index {
	return p.index(ptr)
}

func (p *Pool[T]) index(ptr *T) Index {
	off := uintptr(unsafe.Pointer(ptr)) - uintptr(p.base)
	if off >= uintptr(p.lo.Size) {
		panic("freelist: pointer outside pool storage")
	}
	if off%uintptr(p.lo.SlotSize) != 0 {
		panic(fmt.Sprintf("freelist: pointer misaligned, offset %d is not a multiple of the slot size %d",
			off, p.lo.SlotSize))
	}
	i := int(off) / p.lo.SlotSize
	if i < p.lo.HeaderSlots {
		panic(fmt.Sprintf("freelist: pointer addresses header slot %d", i))
	}
	return Index(i)
}
