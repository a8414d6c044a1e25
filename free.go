package tagalloc

import "unsafe"

// Free releases a payload previously returned by Alloc and merges the freed
// block with any free neighbor, so free blocks are always maximal. It must
// be passed the slice Alloc returned, not a derived one.
//
// Invalid payloads -- nil, outside the arena, misaligned, or not currently
// allocated (double free) -- are rejected with ErrInvalidPointer and the
// arena is left untouched.
func (a *Arena) Free(block []byte) error {
	if len(a.mem) == 0 || len(block) == 0 {
		return ErrInvalidPointer
	}
	base := uintptr(unsafe.Pointer(&a.mem[0]))
	ptr := uintptr(unsafe.Pointer(&block[0]))
	if ptr < base || ptr >= base+uintptr(len(a.mem)) {
		return ErrInvalidPointer
	}
	return a.FreeAt(int(ptr - base))
}

// IsValidOffset reports whether dataOff could be a payload start: in bounds,
// 4-aligned, and leaving room for a header before it. It does not inspect
// allocation state; use it to pre-validate untrusted offsets before FreeAt.
func (a *Arena) IsValidOffset(dataOff int) bool {
	return dataOff >= headerSize && dataOff < len(a.mem) && dataOff%alignment == 0
}

// FreeAt releases the block whose payload starts dataOff bytes into the
// arena. The offset must be the position of a payload handed out by Alloc.
func (a *Arena) FreeAt(dataOff int) error {
	if !a.IsValidOffset(dataOff) {
		return ErrInvalidPointer
	}
	off := dataOff - headerSize
	t := a.loadTag(off)
	// A header that is not busy, or whose size cannot possibly describe a
	// block here, means dataOff is not a live payload. Reject before
	// touching anything.
	if !t.busy || t.size < minBlockSize || t.size%alignment != 0 || off+t.size > len(a.mem) {
		return ErrInvalidPointer
	}

	t.busy = false
	end := off + t.size

	succBusy := true
	if end < len(a.mem) {
		succBusy = a.loadTag(end).busy
	}

	switch {
	case t.prevBusy && succBusy:
		// Standalone free block: write its footer and tell the successor
		// its predecessor is now free.
		a.storeTag(off, t)
		a.storeFooter(end, t.size)
		a.setPrevBusy(end, false)

	case t.prevBusy && !succBusy:
		// Merge forward: absorb the successor. Its old footer slot becomes
		// the merged block's footer.
		t.size += a.loadTag(end).size
		a.storeTag(off, t)
		a.storeFooter(off+t.size, t.size)

	case !t.prevBusy && succBusy:
		// Merge backward: the predecessor's footer, just before this block,
		// leads to its header.
		predOff := off - a.loadFooter(off)
		pred := a.loadTag(predOff)
		pred.size += t.size
		a.storeTag(predOff, pred)
		a.storeFooter(predOff+pred.size, pred.size)
		a.setPrevBusy(predOff+pred.size, false)

	default:
		// Both neighbors free: one block from the predecessor's start to
		// the successor's end.
		succSize := a.loadTag(end).size
		predOff := off - a.loadFooter(off)
		pred := a.loadTag(predOff)
		pred.size += t.size + succSize
		a.storeTag(predOff, pred)
		a.storeFooter(predOff+pred.size, pred.size)
	}
	return nil
}
