// Package shm contains platform-specific helpers for mapping named
// shared-memory regions.
package shm

// MappedRegion is a memory-mapped shared region. Data aliases the mapped
// bytes directly and becomes invalid after UnmapRegion.
type MappedRegion struct {
	Data    []byte
	Name    string
	Created bool

	fd int
}

// MapOptions defines options for mapping shared memory.
type MapOptions struct {
	// Name identifies the region; a single path component.
	Name string
	// Size is the region size in bytes. Required when creating,
	// ignored when opening an existing region.
	Size int
	// Create makes a fresh region and fails if one already exists.
	Create bool
}

// MapRegion and UnmapRegion are implemented per platform
// (platform_linux.go, platform_stub.go).
