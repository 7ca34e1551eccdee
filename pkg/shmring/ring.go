package shmring

// Producer and consumer operations. Counts are records; byte slices must
// hold a whole number of records. Failed operations have no effect.

// WriteAvailable reports how many records the producer can write.
func (r *Ring) WriteAvailable() int {
	return r.capacity - int(r.loadHead()-r.loadTail())
}

// ReadAvailable reports how many records the consumer can read.
func (r *Ring) ReadAvailable() int {
	return int(r.loadHead() - r.loadTail())
}

// Push enqueues exactly one record; len(rec) must equal RecordSize.
func (r *Ring) Push(rec []byte) bool {
	if len(rec) != r.recSize {
		return false
	}
	return r.Write(rec)
}

// Write enqueues len(p)/RecordSize records as one unit. It returns false,
// writing nothing, if len(p) is not a whole number of records or space is
// insufficient. An empty p is a no-op success.
func (r *Ring) Write(p []byte) bool {
	if len(p) == 0 {
		return true
	}
	if len(p)%r.recSize != 0 {
		return false
	}
	n := uint64(len(p) / r.recSize)
	head := r.loadHead()
	tail := r.loadTail()
	if uint64(r.capacity)-(head-tail) < n {
		return false
	}
	off := int(head&r.mask) * r.recSize
	if first := len(r.data) - off; first < len(p) {
		copy(r.data[off:], p[:first])
		copy(r.data, p[first:])
	} else {
		copy(r.data[off:], p)
	}
	r.storeHead(head + n)
	return true
}

// Pop dequeues one record into rec; len(rec) must equal RecordSize.
func (r *Ring) Pop(rec []byte) bool {
	if len(rec) != r.recSize {
		return false
	}
	return r.Read(rec)
}

// Peek copies the next len(p)/RecordSize records without consuming them.
func (r *Ring) Peek(p []byte) bool {
	if len(p) == 0 {
		return true
	}
	if len(p)%r.recSize != 0 {
		return false
	}
	n := uint64(len(p) / r.recSize)
	head := r.loadHead()
	tail := r.loadTail()
	if head-tail < n {
		return false
	}
	r.copyOut(p, tail)
	return true
}

// Read dequeues len(p)/RecordSize records as one unit.
func (r *Ring) Read(p []byte) bool {
	if len(p) == 0 {
		return true
	}
	if len(p)%r.recSize != 0 {
		return false
	}
	n := uint64(len(p) / r.recSize)
	head := r.loadHead()
	tail := r.loadTail()
	if head-tail < n {
		return false
	}
	r.copyOut(p, tail)
	r.storeTail(tail + n)
	return true
}

// Skip discards n records without copying them. A negative n returns
// false; tail only moves forward.
func (r *Ring) Skip(n int) bool {
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

func (r *Ring) copyOut(p []byte, tail uint64) {
	off := int(tail&r.mask) * r.recSize
	if first := len(r.data) - off; first < len(p) {
		copy(p, r.data[off:])
		copy(p[first:], r.data[:len(p)-first])
	} else {
		copy(p, r.data[off:off+len(p)])
	}
}

// IsEmpty reports whether no records are readable.
func (r *Ring) IsEmpty() bool { return r.ReadAvailable() == 0 }

// IsFull reports whether no space is writable.
func (r *Ring) IsFull() bool { return r.WriteAvailable() == 0 }

// Reset empties the ring. Not part of the concurrent protocol: both
// processes must be quiescent.
func (r *Ring) Reset() {
	r.storeHead(0)
	r.storeTail(0)
}
