package tagalloc

// std is the process-wide arena behind the package-level functions. It is a
// one-shot resource: exactly one successful Initialize per process, no
// teardown. Like the rest of the package it is single-threaded by contract,
// so there is no locking around it.
var std *Arena

// Initialize creates the process-wide arena of at least sizeInBytes bytes,
// rounded up to a page multiple. It fails with ErrInvalidSize for a
// non-positive size and with ErrAlreadyInitialized on any call after the
// first successful one; a failed call leaves the package uninitialized (or
// the existing arena intact).
func Initialize(sizeInBytes int) error {
	if sizeInBytes <= 0 {
		return ErrInvalidSize
	}
	if std != nil {
		return ErrAlreadyInitialized
	}
	a, err := New(sizeInBytes)
	if err != nil {
		return err
	}
	std = a
	return nil
}

// Allocate allocates sizeInBytes payload bytes from the process-wide arena.
// It returns nil before Initialize, for non-positive sizes, and on
// exhaustion.
func Allocate(sizeInBytes int) []byte {
	if std == nil {
		return nil
	}
	return std.Alloc(sizeInBytes)
}

// Release frees a payload returned by Allocate.
func Release(block []byte) error {
	if std == nil {
		return ErrInvalidPointer
	}
	return std.Free(block)
}

// Report returns the block-list table of the process-wide arena, or an
// empty table before Initialize.
func Report() string {
	if std == nil {
		return (&Arena{}).Report()
	}
	return std.Report()
}
