//go:build !unix

package mmapx

// Heap fallback for platforms without an mmap surface. The Go heap already
// hands out zeroed memory, and the region is reclaimed by the collector once
// unreferenced, so Free has nothing to do. The length is rounded up to a
// page multiple like the mapped variant; page alignment of the base address
// is not guaranteed here.

func Alloc(size int) ([]byte, error) {
	return make([]byte, roundToPage(size)), nil
}

func Free(mem []byte) error {
	return nil
}
