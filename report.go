package tagalloc

import (
	"fmt"
	"io"
	"strings"
	"unsafe"
)

// BlockInfo describes one block of the implicit list, as seen by a
// read-only walk.
type BlockInfo struct {
	// Offset is the block's start, in bytes from the arena base.
	Offset int
	// Size is the block's full size, header and footer included.
	Size int
	// Busy reports whether the block is currently allocated.
	Busy bool
	// PrevBusy is the recorded state of the block's predecessor.
	PrevBusy bool
}

// Blocks walks the block list in address order and returns a snapshot of
// every block. It never mutates the arena.
func (a *Arena) Blocks() []BlockInfo {
	var blocks []BlockInfo
	for off := 0; off < len(a.mem); {
		t := a.loadTag(off)
		blocks = append(blocks, BlockInfo{
			Offset:   off,
			Size:     t.size,
			Busy:     t.busy,
			PrevBusy: t.prevBusy,
		})
		off += t.size
	}
	return blocks
}

// Available returns the total payload capacity of all free blocks. Because
// of fragmentation a single allocation of this size may still fail.
func (a *Arena) Available() int {
	total := 0
	for off := 0; off < len(a.mem); {
		t := a.loadTag(off)
		if !t.busy {
			total += t.size - headerSize
		}
		off += t.size
	}
	return total
}

// Metrics is a point-in-time usage snapshot of an arena.
type Metrics struct {
	Capacity    int     // arena size in bytes, metadata included
	BusyBytes   int     // sum of busy block sizes
	FreeBytes   int     // sum of free block sizes
	BusyBlocks  int     // number of busy blocks
	FreeBlocks  int     // number of free blocks
	LargestFree int     // payload capacity of the largest free block
	Utilization float64 // BusyBytes / Capacity, 0 for an empty arena
}

// Metrics walks the block list and returns usage counters.
func (a *Arena) Metrics() Metrics {
	m := Metrics{Capacity: len(a.mem)}
	for off := 0; off < len(a.mem); {
		t := a.loadTag(off)
		if t.busy {
			m.BusyBytes += t.size
			m.BusyBlocks++
		} else {
			m.FreeBytes += t.size
			m.FreeBlocks++
			if p := t.size - headerSize; p > m.LargestFree {
				m.LargestFree = p
			}
		}
		off += t.size
	}
	if m.Capacity > 0 {
		m.Utilization = float64(m.BusyBytes) / float64(m.Capacity)
	}
	return m
}

// Dump writes a table of every block to w: sequence number, busy/free
// status, predecessor status, start and end addresses, and size, followed
// by busy/free/grand totals. The grand total always equals the arena size.
func (a *Arena) Dump(w io.Writer) {
	fmt.Fprintln(w, "************************************Block list***********************************")
	fmt.Fprintln(w, "No.\tStatus\tPrev\tBegin\t\tEnd\t\tSize")
	fmt.Fprintln(w, "---------------------------------------------------------------------------------")

	var base uintptr
	if len(a.mem) > 0 {
		base = uintptr(unsafe.Pointer(&a.mem[0]))
	}
	busy, free := 0, 0
	seq := 1
	for off := 0; off < len(a.mem); {
		t := a.loadTag(off)
		if t.busy {
			busy += t.size
		} else {
			free += t.size
		}
		begin := base + uintptr(off)
		end := begin + uintptr(t.size) - 1
		fmt.Fprintf(w, "%d\t%s\t%s\t0x%08x\t0x%08x\t%d\n",
			seq, status(t.busy), status(t.prevBusy), uint64(begin), uint64(end), t.size)
		off += t.size
		seq++
	}

	fmt.Fprintln(w, "---------------------------------------------------------------------------------")
	fmt.Fprintf(w, "Total busy size = %d\n", busy)
	fmt.Fprintf(w, "Total free size = %d\n", free)
	fmt.Fprintf(w, "Total size = %d\n", busy+free)
}

// Report returns the Dump table as a string.
func (a *Arena) Report() string {
	var sb strings.Builder
	a.Dump(&sb)
	return sb.String()
}

func status(busy bool) string {
	if busy {
		return "Busy"
	}
	return "Free"
}
