package shmring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastipc/shmring/api"
)

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()

	_, err := Create(ctx, Config{Name: "x", RecordSize: 8, Capacity: 100})
	assert.ErrorIs(t, err, api.ErrNotPowerOfTwo)

	_, err = Create(ctx, Config{Name: "x", RecordSize: 0, Capacity: 64})
	assert.ErrorIs(t, err, api.ErrRecordSize)

	_, err = Create(ctx, Config{Name: "x", RecordSize: 8, Capacity: 64, CacheLineSize: 32})
	assert.ErrorIs(t, err, api.ErrCacheLineSize)

	_, err = Create(ctx, Config{Name: "x", RecordSize: 8, Capacity: 64, CacheLineSize: 68})
	assert.ErrorIs(t, err, api.ErrCacheLineSize)
}

func TestSegmentSize(t *testing.T) {
	// Header line + two counter lines + data.
	assert.Equal(t, 3*64+8*16, segmentSize(64, 8, 16))
	assert.Equal(t, 3*128+16*1024, segmentSize(128, 16, 1024))
}
