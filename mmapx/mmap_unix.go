//go:build unix

package mmapx

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Alloc returns a zero-initialized, page-aligned, read-write region of at
// least size bytes backed by an anonymous private mapping. The returned
// slice covers the whole mapping, so its length is size rounded up to a
// page multiple.
func Alloc(size int) ([]byte, error) {
	size = roundToPage(size)
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mmapx: mmap of %d bytes failed: %w", size, err)
	}
	return mem, nil
}

// Free unmaps a region returned by Alloc. It must be passed the same slice
// that Alloc returned, not a derived one.
func Free(mem []byte) error {
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("mmapx: munmap failed: %w", err)
	}
	return nil
}
