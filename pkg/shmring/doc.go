// Package shmring places the SPSC ring in a named shared-memory region so
// the producer and consumer can live in different processes.
//
// A segment holds, contiguously: a geometry header, the head counter, the
// tail counter (each alone on one cache line), and a data region of
// capacity fixed-size records. The creating process writes the header;
// openers validate magic, version, and geometry before touching the ring.
// Counters are updated with the same acquire/release protocol as package
// ring, executed directly on the mapped words, so ordered delivery holds
// across address spaces.
//
//	// process A
//	r, err := shmring.Create(ctx, shmring.Config{
//	  Name: "ticks", RecordSize: 16, Capacity: 1024,
//	})
//
//	// process B
//	r, err := shmring.Open(ctx, "ticks", shmring.Options{})
//
// Exactly one process may produce and exactly one may consume at a time;
// the segment does not arbitrate ownership.
//
// Linux only (/dev/shm). Other platforms return api.ErrUnsupported.
package shmring
