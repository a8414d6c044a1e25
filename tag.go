package tagalloc

import "encoding/binary"

const (
	// headerSize is the size of the boundary-tag word at the start of every
	// block. Free blocks mirror their size in a second word (the footer) at
	// their end.
	headerSize = 8
	footerSize = 8

	// alignment is the payload alignment unit. Block sizes are always
	// multiples of alignment, which keeps the two low bits of a header word
	// free for the flags.
	alignment = 4

	// minBlockSize is the smallest block that can stand alone as a free
	// block: one header plus one footer.
	minBlockSize = headerSize + footerSize

	busyBit     = 1 << 0
	prevBusyBit = 1 << 1
	flagMask    = busyBit | prevBusyBit
)

// tag is the decoded form of a block header. All allocation and coalescing
// decisions are made on tags; the packed word exists only in the arena bytes.
type tag struct {
	size     int
	busy     bool
	prevBusy bool
}

func packTag(t tag) uint64 {
	w := uint64(t.size)
	if t.busy {
		w |= busyBit
	}
	if t.prevBusy {
		w |= prevBusyBit
	}
	return w
}

func unpackTag(w uint64) tag {
	return tag{
		size:     int(w &^ uint64(flagMask)),
		busy:     w&busyBit != 0,
		prevBusy: w&prevBusyBit != 0,
	}
}

// loadTag reads the header of the block starting at off.
func (a *Arena) loadTag(off int) tag {
	return unpackTag(binary.LittleEndian.Uint64(a.mem[off:]))
}

// storeTag writes the header of the block starting at off.
func (a *Arena) storeTag(off int, t tag) {
	binary.LittleEndian.PutUint64(a.mem[off:], packTag(t))
}

// setPrevBusy updates the predecessor-busy flag of the block starting at
// off. A no-op when off is the arena end, i.e. the block has no successor.
func (a *Arena) setPrevBusy(off int, v bool) {
	if off >= len(a.mem) {
		return
	}
	t := a.loadTag(off)
	t.prevBusy = v
	a.storeTag(off, t)
}

// loadFooter reads the footer of the free block ending at end and returns
// the recorded size. Footers carry no flags.
func (a *Arena) loadFooter(end int) int {
	return int(binary.LittleEndian.Uint64(a.mem[end-footerSize:]))
}

// storeFooter writes the footer of the free block ending at end.
func (a *Arena) storeFooter(end, size int) {
	binary.LittleEndian.PutUint64(a.mem[end-footerSize:], uint64(size))
}

// alignUp rounds n up to the next multiple of the alignment unit.
func alignUp(n int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}
