// Package ring implements a fixed-capacity, lock-free, wait-free
// single-producer/single-consumer circular buffer.
//
// Exactly one goroutine may produce and exactly one may consume. The two
// sides synchronize through a pair of monotonically increasing counters
// placed on separate cache lines; the producer publishes its counter after
// the data copy, the consumer's load of it acquires the copied bytes. No
// operation locks, allocates, or performs a syscall: every call either
// succeeds immediately or reports insufficient space/data as a boolean.
//
//	r, err := ring.New[int](1024)
//	// producer goroutine
//	for !r.Push(v) {
//	}
//	// consumer goroutine
//	v, ok := r.Pop()
//
// Callers that want blocking behavior wrap these calls in their own retry
// loop; package spin provides ready-made, context-aware wrappers.
package ring
