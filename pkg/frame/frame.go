// Package frame implements length-prefixed message framing on a byte ring.
//
// Each frame is a 4-byte little-endian payload length followed by the
// payload. Framing inherits the ring's guarantees: a frame is either fully
// written and fully visible to the reader, or not at all. The ring only
// delivers ordered, uncorrupted bytes; this package supplies the one wire
// format the library ships.
package frame

import (
	"encoding/binary"

	"github.com/valyala/bytebufferpool"
)

// headerSize is the byte length of the frame length prefix.
const headerSize = 4

// ByteStream is the byte-oriented ring surface framing needs. Both
// *ring.ByteRing and a *shmring.Ring with RecordSize 1 satisfy it, so the
// same framing runs in-process and across /dev/shm.
type ByteStream interface {
	Capacity() int
	ReadAvailable() int
	Write(p []byte) bool
	Peek(p []byte) bool
	Read(p []byte) bool
	Skip(n int) bool
}

// Writer frames payloads onto the producer side of a byte ring. The ring
// must have capacity of at least 4 bytes to hold a length prefix; on a
// smaller ring every WriteFrame, even of an empty payload, returns false.
type Writer struct {
	r ByteStream
}

// NewWriter returns a Writer producing into r.
func NewWriter(r ByteStream) *Writer { return &Writer{r: r} }

// WriteFrame writes the length prefix and payload as one unit. It returns
// false, with no bytes written, if the ring currently lacks space for the
// whole frame. A payload larger than capacity−4 can never fit and always
// returns false.
func (w *Writer) WriteFrame(p []byte) bool {
	if len(p) > w.r.Capacity()-headerSize {
		return false
	}
	// Stage header+payload contiguously so a single ring write keeps
	// the all-or-nothing property.
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(p)))
	buf.B = append(buf.B, hdr[:]...)
	buf.B = append(buf.B, p...)
	return w.r.Write(buf.B)
}

// Reader unframes payloads from the consumer side of a byte ring.
type Reader struct {
	r   ByteStream
	hdr [headerSize]byte
}

// NewReader returns a Reader consuming from r.
func NewReader(r ByteStream) *Reader { return &Reader{r: r} }

// next peeks the length prefix and reports the payload length, or false
// if the complete frame has not arrived yet.
func (r *Reader) next() (int, bool) {
	if !r.r.Peek(r.hdr[:]) {
		return 0, false
	}
	n := int(binary.LittleEndian.Uint32(r.hdr[:]))
	if r.r.ReadAvailable() < headerSize+n {
		return 0, false
	}
	return n, true
}

// ReadFrame returns the next payload. It returns false, consuming
// nothing, until the complete frame is available.
func (r *Reader) ReadFrame() ([]byte, bool) {
	n, ok := r.next()
	if !ok {
		return nil, false
	}
	r.r.Skip(headerSize)
	p := make([]byte, n)
	r.r.Read(p)
	return p, true
}

// SkipFrame discards the next payload without copying it out.
func (r *Reader) SkipFrame() bool {
	n, ok := r.next()
	if !ok {
		return false
	}
	return r.r.Skip(headerSize + n)
}
