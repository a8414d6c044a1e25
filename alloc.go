package tagalloc

// Alloc allocates n payload bytes and returns them as a subslice of the
// arena (len n, cap the block's full payload capacity). It returns nil when
// n is not positive or no free block is large enough; in both cases the
// arena is unchanged.
//
// The search is best-fit: the smallest free block that can hold the rounded
// request plus header wins, ties going to the lowest address. When the
// winner is large enough to leave a viable free fragment it is split in two;
// otherwise the whole block is handed out.
func (a *Arena) Alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	aligned := alignUp(n)
	// alignUp wraps around for sizes near the top of the int range; such a
	// request, like any other larger than the arena, can never be satisfied.
	if aligned <= 0 || aligned > len(a.mem)-headerSize {
		return nil
	}
	need := aligned + headerSize
	if need < minBlockSize {
		// Any busy block can be freed later and must then have room for
		// its own footer.
		need = minBlockSize
	}

	best := -1
	bestSize := 0
	for off := 0; off < len(a.mem); {
		t := a.loadTag(off)
		if !t.busy && t.size >= need && (best < 0 || t.size < bestSize) {
			best, bestSize = off, t.size
		}
		off += t.size
	}
	if best < 0 {
		return nil
	}

	t := a.loadTag(best)
	remainder := t.size - need
	if remainder < minBlockSize {
		// The fragment could not carry its own boundary tags, so the whole
		// block becomes busy and the slack stays inside it.
		t.busy = true
		a.storeTag(best, t)
		a.setPrevBusy(best+t.size, true)
		return a.payload(best, t.size, n)
	}

	// Split: busy block of exactly need bytes, free remainder after it.
	a.storeTag(best, tag{size: need, busy: true, prevBusy: t.prevBusy})
	rem := best + need
	a.storeTag(rem, tag{size: remainder, prevBusy: true})
	a.storeFooter(rem+remainder, remainder)
	a.setPrevBusy(rem+remainder, false)
	return a.payload(best, need, n)
}

// payload returns the caller-visible slice for the busy block at off:
// n bytes long, capped at the block's payload capacity so the caller cannot
// grow into the next block's header.
func (a *Arena) payload(off, size, n int) []byte {
	return a.mem[off+headerSize : off+headerSize+n : off+size]
}
