//go:build linux

package shmring

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastipc/shmring/api"
)

func segName(t *testing.T) string {
	return fmt.Sprintf("shmring-test-%d-%s", os.Getpid(), t.Name())
}

func mustCreate(t *testing.T, cfg Config) *Ring {
	t.Helper()
	r, err := Create(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestCreateOpenRoundTrip(t *testing.T) {
	name := segName(t)
	creator := mustCreate(t, Config{Name: name, RecordSize: 8, Capacity: 16})
	assert.Equal(t, name, creator.Name())
	assert.Equal(t, 8, creator.RecordSize())
	assert.Equal(t, 16, creator.Capacity())
	assert.Equal(t, DefaultCacheLineSize, creator.CacheLineSize())

	opener, err := Open(context.Background(), name, Options{})
	require.NoError(t, err)
	defer func() { _ = opener.Close() }()
	assert.Equal(t, 16, opener.Capacity())
	assert.Equal(t, 8, opener.RecordSize())

	// Producer on the creator mapping, consumer on the opener mapping.
	rec := make([]byte, 8)
	binary.LittleEndian.PutUint64(rec, 424242)
	require.True(t, creator.Push(rec))

	got := make([]byte, 8)
	require.True(t, opener.Pop(got))
	assert.Equal(t, uint64(424242), binary.LittleEndian.Uint64(got))
	assert.True(t, opener.IsEmpty())
}

func TestOpenRejectsGarbage(t *testing.T) {
	_, err := Open(context.Background(), segName(t)+"-missing", Options{})
	assert.Error(t, err)

	// A region without our magic.
	name := segName(t)
	f, err := os.Create("/dev/shm/" + name)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(4096))
	require.NoError(t, f.Close())
	defer func() { _ = os.Remove("/dev/shm/" + name) }()

	_, err = Open(context.Background(), name, Options{})
	assert.ErrorIs(t, err, api.ErrBadSegment)
}

func TestRecordGeometry(t *testing.T) {
	r := mustCreate(t, Config{Name: segName(t), RecordSize: 12, Capacity: 8})

	assert.False(t, r.Push(make([]byte, 8)), "wrong record size")
	assert.False(t, r.Write(make([]byte, 30)), "not a whole number of records")
	assert.True(t, r.Write(make([]byte, 36)))
	assert.Equal(t, 3, r.ReadAvailable())

	assert.False(t, r.Pop(make([]byte, 4)))
	assert.False(t, r.Skip(-1))
	assert.Equal(t, 3, r.ReadAvailable())
	assert.True(t, r.Skip(1))
	assert.True(t, r.Read(make([]byte, 24)))
	assert.True(t, r.IsEmpty())
	assert.False(t, r.Skip(-2))
	assert.True(t, r.IsEmpty())
}

func TestSegmentWraparound(t *testing.T) {
	r := mustCreate(t, Config{Name: segName(t), RecordSize: 4, Capacity: 8})

	rec := make([]byte, 4)
	for i := 0; i < 13; i++ {
		binary.LittleEndian.PutUint32(rec, uint32(i))
		require.True(t, r.Push(rec))
		require.True(t, r.Pop(rec))
	}

	src := make([]byte, 6*4)
	for i := 0; i < 6; i++ {
		binary.LittleEndian.PutUint32(src[i*4:], uint32(1000+i))
	}
	require.True(t, r.Write(src))

	dst := make([]byte, 6*4)
	require.True(t, r.Peek(dst))
	assert.Equal(t, src, dst)
	require.True(t, r.Read(dst))
	assert.Equal(t, src, dst)
}

func TestSegmentConcurrentIntegrity(t *testing.T) {
	const total = 200_000
	r := mustCreate(t, Config{Name: segName(t), RecordSize: 16, Capacity: 1024})

	// Two mappings of the same segment, as two processes would hold.
	peer, err := Open(context.Background(), r.Name(), Options{})
	require.NoError(t, err)
	defer func() { _ = peer.Close() }()

	done := make(chan bool, 1)
	go func() {
		rec := make([]byte, 16)
		for i := uint64(0); i < total; {
			if !peer.Pop(rec) {
				runtime.Gosched()
				continue
			}
			if binary.LittleEndian.Uint64(rec) != i ||
				binary.LittleEndian.Uint64(rec[8:]) != i*7 {
				done <- false
				return
			}
			i++
		}
		done <- true
	}()

	rec := make([]byte, 16)
	for i := uint64(0); i < total; {
		binary.LittleEndian.PutUint64(rec, i)
		binary.LittleEndian.PutUint64(rec[8:], i*7)
		if r.Push(rec) {
			i++
		} else {
			runtime.Gosched()
		}
	}
	assert.True(t, <-done, "consumer observed ordering or corruption errors across mappings")
}

func TestView(t *testing.T) {
	type sample struct {
		Seq     uint64
		Payload uint64
	}
	r := mustCreate(t, Config{Name: segName(t), RecordSize: 16, Capacity: 64})

	_, err := NewView[*int](r)
	assert.ErrorIs(t, err, api.ErrTypeHasPointers)
	_, err = NewView[uint32](r)
	assert.ErrorIs(t, err, api.ErrRecordSize)

	v, err := NewView[sample](r)
	require.NoError(t, err)

	require.True(t, v.Push(sample{Seq: 1, Payload: 7}))
	require.True(t, v.Write([]sample{{2, 14}, {3, 21}}))

	got, ok := v.Pop()
	require.True(t, ok)
	assert.Equal(t, sample{1, 7}, got)

	rest := make([]sample, 2)
	require.True(t, v.Read(rest))
	assert.Equal(t, []sample{{2, 14}, {3, 21}}, rest)
}

func TestRegistry(t *testing.T) {
	g := NewRegistry()
	ctx := context.Background()
	name := segName(t)

	r, err := g.Create(ctx, Config{Name: name, RecordSize: 8, Capacity: 8})
	require.NoError(t, err)
	defer func() { _ = g.CloseAll() }()

	_, err = g.Create(ctx, Config{Name: name, RecordSize: 8, Capacity: 8})
	assert.ErrorIs(t, err, api.ErrSegmentExists)

	got, ok := g.Get(name)
	require.True(t, ok)
	assert.Same(t, r, got)
	assert.Equal(t, []string{name}, g.Names())

	require.NoError(t, g.Close(name))
	_, ok = g.Get(name)
	assert.False(t, ok)
	assert.NoError(t, g.Close(name), "closing an unknown name is a no-op")
}

func TestStallCheck(t *testing.T) {
	r := mustCreate(t, Config{Name: segName(t), RecordSize: 8, Capacity: 2})
	check := StallCheck(r, 20*time.Millisecond)

	assert.NoError(t, check(), "empty ring is healthy")

	require.True(t, r.Write(make([]byte, 16)))
	assert.NoError(t, check(), "first full observation only arms the timer")
	time.Sleep(30 * time.Millisecond)
	assert.Error(t, check(), "full ring with idle consumer past the window")

	require.True(t, r.Skip(1))
	assert.NoError(t, check(), "consumer progress clears the stall")
}
