// Package mmapx provides anonymous memory mappings used as backing storage
// for allocator arenas: zero-initialized, read-write regions obtained from
// the operating system in page-size multiples.
package mmapx

import "os"

// PageSize returns the host page size.
func PageSize() int {
	return os.Getpagesize()
}

// roundToPage rounds size up to the next multiple of the host page size.
func roundToPage(size int) int {
	page := PageSize()
	return (size + page - 1) / page * page
}
