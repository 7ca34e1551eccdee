package api

// Segment is a named shared-memory region holding one ring. The creating
// process initializes the layout; any number of subsequent opens validate
// it, but at most one producer and one consumer may operate on the ring at
// a time.
type Segment interface {
	// Name is the identifier under /dev/shm (or the platform equivalent).
	Name() string
	// RecordSize is the fixed byte size of one ring element.
	RecordSize() int
	// Close unmaps the region. Created segments are also unlinked.
	Close() error
}
