// Package tagalloc implements a fixed-capacity boundary-tag memory
// allocator. An Arena manages one contiguous byte region obtained once from
// the operating system and carves variably-sized blocks out of it: best-fit
// search with splitting on allocation, eager four-case coalescing on release.
// Every block starts with a header word holding its size plus two flags
// (self busy, predecessor busy); free blocks mirror the size in a footer
// word at their end, so both neighbors of a freed block are reachable in
// constant time without any free-list index.
//
// Arenas are not goroutine-safe. The design is single-threaded by contract;
// callers needing concurrency must synchronize externally.
package tagalloc

import (
	"errors"
	"fmt"

	"github.com/tagmem/tagalloc/mmapx"
)

var (
	// ErrInvalidSize is returned when a requested arena size is not positive
	// or a backing buffer cannot hold a single block.
	ErrInvalidSize = errors.New("tagalloc: invalid arena size")

	// ErrAlreadyInitialized is returned by Initialize when the process-wide
	// arena already exists.
	ErrAlreadyInitialized = errors.New("tagalloc: already initialized")

	// ErrMapFailed wraps the OS error when the backing mapping is denied.
	ErrMapFailed = errors.New("tagalloc: cannot map arena memory")

	// ErrInvalidPointer is returned by Free and FreeAt for payloads that are
	// nil, outside the arena, misaligned, or not currently allocated.
	ErrInvalidPointer = errors.New("tagalloc: invalid pointer")
)

// Arena is a fixed-capacity boundary-tag allocator over one contiguous byte
// region. The block list is implicit: blocks tile the region end to end and
// are traversed via the sizes in their headers.
type Arena struct {
	mem    []byte
	mapped bool
}

// New creates an Arena of at least requested bytes. The size is rounded up
// to a multiple of the host page size and the region is obtained from the OS
// as a zero-initialized anonymous mapping. The arena initially contains a
// single free block spanning its entirety.
func New(requested int) (*Arena, error) {
	if requested <= 0 {
		return nil, ErrInvalidSize
	}
	page := mmapx.PageSize()
	allocSize := (requested + page - 1) / page * page
	mem, err := mmapx.Alloc(allocSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMapFailed, err)
	}
	a := &Arena{mem: mem, mapped: true}
	a.format()
	return a, nil
}

// NewFromBuffer creates an Arena over caller-provided memory. The buffer
// length must be a multiple of 4 and at least one minimum block. The buffer
// contents are not zeroed; only the boundary tags are written.
func NewFromBuffer(buf []byte) (*Arena, error) {
	if len(buf) < minBlockSize || len(buf)%alignment != 0 {
		return nil, fmt.Errorf("%w: buffer of %d bytes", ErrInvalidSize, len(buf))
	}
	a := &Arena{mem: buf}
	a.format()
	return a, nil
}

// format writes the initial state: one free block covering the whole arena.
// The first block's predecessor-busy flag is permanently set; "no
// predecessor" is modeled as a busy one.
func (a *Arena) format() {
	total := len(a.mem)
	a.storeTag(0, tag{size: total, prevBusy: true})
	a.storeFooter(total, total)
}

// Size returns the arena capacity in bytes, block metadata included.
func (a *Arena) Size() int {
	return len(a.mem)
}

// Reset drops every allocation and restores the single spanning free block.
// Payload contents are left as they are.
func (a *Arena) Reset() {
	if a.mem == nil {
		panic("tagalloc: use of closed arena")
	}
	a.format()
}

// Close releases the backing mapping, if any. The arena must not be used
// afterwards. Closing twice is a no-op.
func (a *Arena) Close() error {
	if a.mem == nil {
		return nil
	}
	mem := a.mem
	a.mem = nil
	if a.mapped {
		a.mapped = false
		return mmapx.Free(mem)
	}
	return nil
}
