//go:build !linux

package shm

import "github.com/fastipc/shmring/api"

// MapRegion is unsupported outside Linux.
func MapRegion(opts MapOptions) (*MappedRegion, error) {
	return nil, api.ErrUnsupported
}

// UnmapRegion is unsupported outside Linux.
func UnmapRegion(region *MappedRegion) error {
	return api.ErrUnsupported
}
