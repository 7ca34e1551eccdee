// Package api defines public API contracts for shmring.
package api

import "errors"

// Construction and segment errors. Hot-path operations never return these;
// insufficient space or data is reported as a boolean false.
var (
	// ErrNotPowerOfTwo is returned when a requested capacity is not a
	// positive power of two.
	ErrNotPowerOfTwo = errors.New("shmring: capacity must be a positive power of two")

	// ErrCacheLineSize is returned when the configured cache-line size
	// cannot hold one 8-byte counter or is not a multiple of 8.
	ErrCacheLineSize = errors.New("shmring: cache-line size must be a multiple of 8 and at least 8")

	// ErrRecordSize is returned when a record size is zero or disagrees
	// with the geometry stored in a segment.
	ErrRecordSize = errors.New("shmring: invalid record size")

	// ErrBadSegment is returned when a mapped region does not carry a
	// valid segment header.
	ErrBadSegment = errors.New("shmring: bad segment header")

	// ErrVersionMismatch is returned when a segment was produced by an
	// incompatible layout version.
	ErrVersionMismatch = errors.New("shmring: segment version mismatch")

	// ErrTypeHasPointers is returned when an element type carries
	// pointers and therefore cannot be transferred by raw byte copy.
	ErrTypeHasPointers = errors.New("shmring: element type must not contain pointers")

	// ErrUnsupported is returned on platforms without shared-memory
	// support.
	ErrUnsupported = errors.New("shmring: shared memory not supported on this platform")

	// ErrSegmentExists is returned when creating a segment whose name is
	// already registered.
	ErrSegmentExists = errors.New("shmring: segment already exists")
)
