package shmring

import (
	"unsafe"

	"github.com/fastipc/shmring/api"
	"github.com/fastipc/shmring/pkg/ring"
)

// View is a typed veneer over a segment ring. Because elements cross an
// address-space boundary as raw bytes, T must contain no pointers and its
// size must match the segment's record size; both are checked up front.
type View[T any] struct {
	r *Ring
}

// NewView validates T against the segment geometry.
func NewView[T any](r *Ring) (*View[T], error) {
	if err := ring.NoPointers[T](); err != nil {
		return nil, err
	}
	var zero T
	if int(unsafe.Sizeof(zero)) != r.recSize {
		return nil, api.ErrRecordSize
	}
	return &View[T]{r: r}, nil
}

// Ring returns the underlying segment ring.
func (v *View[T]) Ring() *Ring { return v.r }

func (v *View[T]) bytes(p *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), v.r.recSize)
}

// Push enqueues one value, returning false if the ring is full.
func (v *View[T]) Push(val T) bool {
	return v.r.Write(v.bytes(&val))
}

// Pop dequeues one value. ok is false if the ring is empty.
func (v *View[T]) Pop() (val T, ok bool) {
	ok = v.r.Read(v.bytes(&val))
	return val, ok
}

// Write enqueues all of src or nothing.
func (v *View[T]) Write(src []T) bool {
	if len(src) == 0 {
		return true
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&src[0])), len(src)*v.r.recSize)
	return v.r.Write(b)
}

// Read dequeues exactly len(dst) values or nothing.
func (v *View[T]) Read(dst []T) bool {
	if len(dst) == 0 {
		return true
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), len(dst)*v.r.recSize)
	return v.r.Read(b)
}
