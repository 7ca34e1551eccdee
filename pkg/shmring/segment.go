package shmring

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync/atomic"
	"unsafe"

	"go.opentelemetry.io/otel/trace"

	"github.com/fastipc/shmring/api"
	internalshm "github.com/fastipc/shmring/internal/shm"
)

// Segment layout constants. The header fills the first cache line; the
// head and tail counters each take the next one; data follows. Both sides
// of an IPC channel must agree on the whole geometry, which is why it is
// stored in the header and checked on Open.
const (
	segmentMagic   = "SHMRING\x00"
	segmentVersion = uint32(1)

	// Header field offsets (bytes).
	offMagic      = 0
	offVersion    = 8
	offFlags      = 12
	offCacheLine  = 16
	offRecordSize = 20
	offCapacity   = 24

	headerBytes = 32

	// MinCacheLineSize keeps the header inside its line.
	MinCacheLineSize = 64

	// DefaultCacheLineSize matches package ring.
	DefaultCacheLineSize = 64
)

// Config describes a segment to create.
type Config struct {
	// Name identifies the region under /dev/shm.
	Name string
	// RecordSize is the fixed byte size of one element.
	RecordSize int
	// Capacity is the element capacity; a positive power of two.
	Capacity int
	// CacheLineSize isolates the counters; 0 means DefaultCacheLineSize.
	// Use 128 on CPUs with larger lines, identically in both processes.
	CacheLineSize int
	// Tracer, if set, records spans for segment lifecycle operations.
	Tracer trace.Tracer
}

// Options configures Open.
type Options struct {
	// Tracer, if set, records spans for segment lifecycle operations.
	Tracer trace.Tracer
}

// Ring is an SPSC ring of fixed-size records living in a mapped segment.
// The operation surface and protocol match ring.Ring; counts are records,
// payloads are raw bytes.
type Ring struct {
	region *internalshm.MappedRegion
	tracer trace.Tracer

	head *uint64 // mapped word, producer-owned
	tail *uint64 // mapped word, consumer-owned
	data []byte

	mask      uint64
	capacity  int
	recSize   int
	cacheLine int
}

func segmentSize(cacheLine, recSize, capacity int) int {
	return 3*cacheLine + recSize*capacity
}

// Create initializes a new named segment and returns its ring, empty.
func Create(ctx context.Context, cfg Config) (*Ring, error) {
	if cfg.Tracer != nil {
		_, span := cfg.Tracer.Start(ctx, "shmring.Create")
		defer span.End()
	}

	if cfg.Capacity <= 0 || cfg.Capacity&(cfg.Capacity-1) != 0 {
		return nil, api.ErrNotPowerOfTwo
	}
	if cfg.RecordSize <= 0 {
		return nil, api.ErrRecordSize
	}
	cl := cfg.CacheLineSize
	if cl == 0 {
		cl = DefaultCacheLineSize
	}
	if cl < MinCacheLineSize || cl%8 != 0 {
		return nil, api.ErrCacheLineSize
	}

	region, err := internalshm.MapRegion(internalshm.MapOptions{
		Name:   cfg.Name,
		Size:   segmentSize(cl, cfg.RecordSize, cfg.Capacity),
		Create: true,
	})
	if err != nil {
		return nil, err
	}

	mem := region.Data
	copy(mem[offMagic:], segmentMagic)
	binary.LittleEndian.PutUint32(mem[offVersion:], segmentVersion)
	binary.LittleEndian.PutUint32(mem[offFlags:], 0)
	binary.LittleEndian.PutUint32(mem[offCacheLine:], uint32(cl))
	binary.LittleEndian.PutUint32(mem[offRecordSize:], uint32(cfg.RecordSize))
	binary.LittleEndian.PutUint64(mem[offCapacity:], uint64(cfg.Capacity))

	return newRing(region, cl, cfg.RecordSize, cfg.Capacity, cfg.Tracer), nil
}

// Open maps an existing segment and validates its header.
func Open(ctx context.Context, name string, opts Options) (*Ring, error) {
	if opts.Tracer != nil {
		_, span := opts.Tracer.Start(ctx, "shmring.Open")
		defer span.End()
	}

	region, err := internalshm.MapRegion(internalshm.MapOptions{Name: name})
	if err != nil {
		return nil, err
	}
	mem := region.Data
	if len(mem) < headerBytes || string(mem[offMagic:offMagic+8]) != segmentMagic {
		_ = internalshm.UnmapRegion(region)
		return nil, api.ErrBadSegment
	}
	if v := binary.LittleEndian.Uint32(mem[offVersion:]); v != segmentVersion {
		_ = internalshm.UnmapRegion(region)
		return nil, fmt.Errorf("%w: got %d, want %d", api.ErrVersionMismatch, v, segmentVersion)
	}
	cl := int(binary.LittleEndian.Uint32(mem[offCacheLine:]))
	recSize := int(binary.LittleEndian.Uint32(mem[offRecordSize:]))
	capacity := int(binary.LittleEndian.Uint64(mem[offCapacity:]))
	if cl < MinCacheLineSize || cl%8 != 0 ||
		recSize <= 0 ||
		capacity <= 0 || capacity&(capacity-1) != 0 ||
		len(mem) < segmentSize(cl, recSize, capacity) {
		_ = internalshm.UnmapRegion(region)
		return nil, api.ErrBadSegment
	}
	return newRing(region, cl, recSize, capacity, opts.Tracer), nil
}

func newRing(region *internalshm.MappedRegion, cacheLine, recSize, capacity int, tracer trace.Tracer) *Ring {
	mem := region.Data
	return &Ring{
		region:    region,
		tracer:    tracer,
		head:      (*uint64)(unsafe.Pointer(&mem[cacheLine])),
		tail:      (*uint64)(unsafe.Pointer(&mem[2*cacheLine])),
		data:      mem[3*cacheLine : 3*cacheLine+recSize*capacity],
		mask:      uint64(capacity - 1),
		capacity:  capacity,
		recSize:   recSize,
		cacheLine: cacheLine,
	}
}

// Name returns the segment identifier.
func (r *Ring) Name() string { return r.region.Name }

// RecordSize returns the fixed byte size of one element.
func (r *Ring) RecordSize() int { return r.recSize }

// Capacity returns the fixed element capacity.
func (r *Ring) Capacity() int { return r.capacity }

// CacheLineSize returns the configured counter padding in bytes.
func (r *Ring) CacheLineSize() int { return r.cacheLine }

// Close unmaps the segment. The creator also unlinks it. The counters and
// data stay valid for any process still holding a mapping.
func (r *Ring) Close() error {
	if r.tracer != nil {
		_, span := r.tracer.Start(context.Background(), "shmring.Close")
		defer span.End()
	}
	return internalshm.UnmapRegion(r.region)
}

var _ api.Segment = (*Ring)(nil)

func (r *Ring) loadHead() uint64   { return atomic.LoadUint64(r.head) }
func (r *Ring) loadTail() uint64   { return atomic.LoadUint64(r.tail) }
func (r *Ring) storeHead(v uint64) { atomic.StoreUint64(r.head, v) }
func (r *Ring) storeTail(v uint64) { atomic.StoreUint64(r.tail, v) }
