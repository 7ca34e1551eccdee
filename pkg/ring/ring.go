package ring

import (
	"sync/atomic"

	"github.com/fastipc/shmring/api"
)

// DefaultCacheLineSize separates the producer and consumer counters.
// 128 suits CPUs with larger lines (Apple M-series, some ARM big cores).
const DefaultCacheLineSize = 64

const counterSize = 8 // one uint64

// Compile-time interface compliance.
var _ api.Ring[int] = (*Ring[int])(nil)

// Ring is a bounded SPSC circular buffer of T. One goroutine owns the
// write side, another owns the read side; see package doc for the
// protocol. A Ring must not be copied or relocated while in use.
type Ring[T any] struct {
	// head counts elements ever written, tail elements ever read; both
	// are monotonic and wrap only through uint64 arithmetic. They live
	// in ctrl at indexes 0 and tailIdx so that each sits alone on a
	// region cacheLine bytes wide, keeping the configured padding a
	// construction-time value rather than a struct constant.
	ctrl    []uint64
	tailIdx int

	mask      uint64
	buf       []T
	cacheLine int
}

// Option configures a Ring at construction.
type Option func(*options)

type options struct {
	cacheLine int
}

// WithCacheLineSize sets the byte width of the region isolating each
// counter. It must be a multiple of 8 and at least 8.
func WithCacheLineSize(n int) Option {
	return func(o *options) { o.cacheLine = n }
}

// New returns an empty ring holding exactly capacity elements of T.
// Capacity must be a positive power of two so indexes reduce to a bitmask.
func New[T any](capacity int, opts ...Option) (*Ring[T], error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, api.ErrNotPowerOfTwo
	}
	o := options{cacheLine: DefaultCacheLineSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cacheLine < counterSize || o.cacheLine%counterSize != 0 {
		return nil, api.ErrCacheLineSize
	}
	words := o.cacheLine / counterSize
	return &Ring[T]{
		ctrl:      make([]uint64, 2*words),
		tailIdx:   words,
		mask:      uint64(capacity - 1),
		buf:       make([]T, capacity),
		cacheLine: o.cacheLine,
	}, nil
}

// head/tail accessors. sync/atomic is sequentially consistent, a strict
// superset of the acquire/release edges the protocol requires.

func (r *Ring[T]) loadHead() uint64   { return atomic.LoadUint64(&r.ctrl[0]) }
func (r *Ring[T]) loadTail() uint64   { return atomic.LoadUint64(&r.ctrl[r.tailIdx]) }
func (r *Ring[T]) storeHead(v uint64) { atomic.StoreUint64(&r.ctrl[0], v) }
func (r *Ring[T]) storeTail(v uint64) { atomic.StoreUint64(&r.ctrl[r.tailIdx], v) }

// WriteAvailable reports how many elements the producer can write before
// the ring is full. Producer side only.
func (r *Ring[T]) WriteAvailable() int {
	return len(r.buf) - int(r.loadHead()-r.loadTail())
}

// Push enqueues a single element, returning false if the ring is full.
func (r *Ring[T]) Push(v T) bool {
	head := r.loadHead()
	tail := r.loadTail()
	if uint64(len(r.buf))-(head-tail) < 1 {
		return false
	}
	r.buf[head&r.mask] = v
	r.storeHead(head + 1)
	return true
}

// Write enqueues all of src or nothing. It returns false, leaving the
// ring untouched, if fewer than len(src) slots are free. An empty src is
// a no-op success.
func (r *Ring[T]) Write(src []T) bool {
	n := uint64(len(src))
	if n == 0 {
		return true
	}
	head := r.loadHead()
	tail := r.loadTail()
	if uint64(len(r.buf))-(head-tail) < n {
		return false
	}
	off := head & r.mask
	// The run may cross the end of the array; split into two copies.
	if first := uint64(len(r.buf)) - off; first < n {
		copy(r.buf[off:], src[:first])
		copy(r.buf, src[first:])
	} else {
		copy(r.buf[off:], src)
	}
	// Publishing head after the copies is what hands the elements to
	// the consumer.
	r.storeHead(head + n)
	return true
}

// ReadAvailable reports how many elements the consumer can read.
// Consumer side only.
func (r *Ring[T]) ReadAvailable() int {
	return int(r.loadHead() - r.loadTail())
}

// Pop dequeues a single element. ok is false if the ring is empty.
func (r *Ring[T]) Pop() (v T, ok bool) {
	head := r.loadHead()
	tail := r.loadTail()
	if head == tail {
		return v, false
	}
	v = r.buf[tail&r.mask]
	r.storeTail(tail + 1)
	return v, true
}

// Peek copies the next len(dst) elements without consuming them. It is
// idempotent and safe to call repeatedly, including while the producer is
// active: elements counted as available are fully published.
func (r *Ring[T]) Peek(dst []T) bool {
	n := uint64(len(dst))
	if n == 0 {
		return true
	}
	head := r.loadHead()
	tail := r.loadTail()
	if head-tail < n {
		return false
	}
	r.copyOut(dst, tail)
	return true
}

// Read dequeues exactly len(dst) elements or nothing. An empty dst is a
// no-op success.
func (r *Ring[T]) Read(dst []T) bool {
	n := uint64(len(dst))
	if n == 0 {
		return true
	}
	head := r.loadHead()
	tail := r.loadTail()
	if head-tail < n {
		return false
	}
	r.copyOut(dst, tail)
	// The copy must complete before tail is published, so the producer
	// only reuses slots the consumer has finished reading.
	r.storeTail(tail + n)
	return true
}

// Skip discards n elements without copying them, a fast path for
// protocols that parse a header and drop the payload. A negative n
// returns false; tail only moves forward.
func (r *Ring[T]) Skip(n int) bool {
	if n <= 0 {
		return n == 0
	}
	head := r.loadHead()
	tail := r.loadTail()
	if int(head-tail) < n {
		return false
	}
	r.storeTail(tail + uint64(n))
	return true
}

func (r *Ring[T]) copyOut(dst []T, tail uint64) {
	off := tail & r.mask
	n := uint64(len(dst))
	if first := uint64(len(r.buf)) - off; first < n {
		copy(dst, r.buf[off:])
		copy(dst[first:], r.buf[:n-first])
	} else {
		copy(dst, r.buf[off:off+n])
	}
}

// Capacity returns the fixed element capacity.
func (r *Ring[T]) Capacity() int { return len(r.buf) }

// CacheLineSize returns the configured counter padding in bytes.
func (r *Ring[T]) CacheLineSize() int { return r.cacheLine }

// IsEmpty reports whether no elements are readable.
func (r *Ring[T]) IsEmpty() bool { return r.ReadAvailable() == 0 }

// IsFull reports whether no space is writable.
func (r *Ring[T]) IsFull() bool { return r.WriteAvailable() == 0 }

// Reset returns the ring to the empty state. It is not part of the
// concurrent protocol: call it only while neither side is active.
func (r *Ring[T]) Reset() {
	r.storeHead(0)
	r.storeTail(0)
}
