package api

// Producer is the write side of an SPSC ring. All methods must be called
// from a single goroutine (or process) at a time.
type Producer[T any] interface {
	// WriteAvailable reports how many elements can currently be written.
	WriteAvailable() int
	// Push enqueues one element. It returns false if the ring is full.
	Push(v T) bool
	// Write enqueues len(src) elements as one unit. It returns false,
	// with no side effects, if the ring lacks space for all of them.
	Write(src []T) bool
}

// Consumer is the read side of an SPSC ring. All methods must be called
// from a single goroutine (or process) at a time.
type Consumer[T any] interface {
	// ReadAvailable reports how many elements can currently be read.
	ReadAvailable() int
	// Pop dequeues one element. ok is false if the ring is empty.
	Pop() (v T, ok bool)
	// Peek copies the next len(dst) elements without consuming them.
	// It returns false, with no side effects, on insufficient data.
	Peek(dst []T) bool
	// Read dequeues len(dst) elements as one unit. It returns false,
	// with no side effects, on insufficient data.
	Read(dst []T) bool
	// Skip discards n elements without copying them. A negative n
	// returns false with no effect.
	Skip(n int) bool
}

// Info reports the fixed geometry and derived state of a ring.
type Info interface {
	Capacity() int
	CacheLineSize() int
	IsEmpty() bool
	IsFull() bool
}

// Ring combines both endpoints of an SPSC ring with its geometry. A Ring
// value is shared between exactly one producer and one consumer; handing
// the Producer and Consumer halves to different goroutines is the intended
// usage.
type Ring[T any] interface {
	Producer[T]
	Consumer[T]
	Info

	// Reset returns the ring to the empty state. It is not part of the
	// concurrent protocol: no producer or consumer operation may be in
	// flight.
	Reset()
}
