package ring

// ByteRing is the byte-oriented configuration of Ring, the building block
// for length-prefixed framing over shared memory; see package frame.
type ByteRing = Ring[byte]

// NewByteRing returns an empty byte ring of the given capacity.
func NewByteRing(capacity int, opts ...Option) (*ByteRing, error) {
	return New[byte](capacity, opts...)
}
