package ring

import (
	"testing"

	wqueue "github.com/Workiva/go-datastructures/queue"
)

func BenchmarkPushPop(b *testing.B) {
	r, _ := New[uint64](1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Push(uint64(i))
		r.Pop()
	}
}

func BenchmarkBulkWriteRead(b *testing.B) {
	r, _ := New[uint64](1024)
	src := make([]uint64, 64)
	dst := make([]uint64, 64)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Write(src)
		r.Read(dst)
	}
}

func BenchmarkConcurrentHandoff(b *testing.B) {
	r, _ := New[uint64](1024)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := 0; n < b.N; {
			if _, ok := r.Pop(); ok {
				n++
			}
		}
	}()
	for n := 0; n < b.N; {
		if r.Push(uint64(n)) {
			n++
		}
	}
	<-done
}

// Baseline: the general-purpose lock-based ring from go-datastructures,
// to keep the SPSC fast path honest.
func BenchmarkWorkivaRingBuffer(b *testing.B) {
	rb := wqueue.NewRingBuffer(1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if ok, _ := rb.Offer(uint64(i)); ok {
			_, _ = rb.Get()
		}
	}
}
