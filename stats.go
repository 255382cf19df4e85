package freelist

// Stats is a decoded snapshot of the control word. All fields come from a
// single atomic load, so they are mutually consistent for some real-time
// point between the call and its return.
type Stats struct {
	Live     int   // live elements (== Size)
	Capacity int   // fixed element capacity
	Frontier int   // first slot index never yet handed out
	FreeHead Index // head of the free list, 0 when empty
	Tag      uint16
}

// Stats returns a consistent snapshot of the pool state.
func (p *Pool[T]) Stats() Stats {
	c := ctlWord(p.ctl().Load())
	return Stats{
		Live:     int(c.count()),
		Capacity: p.lo.Capacity(),
		Frontier: int(c.next()),
		FreeHead: Index(c.free()),
		Tag:      c.tag(),
	}
}
