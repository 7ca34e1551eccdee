//go:build linux

package shm

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// MapRegion maps or creates a shared memory region under /dev/shm.
func MapRegion(opts MapOptions) (*MappedRegion, error) {
	flags := unix.O_RDWR | unix.O_CLOEXEC
	if opts.Create {
		flags |= unix.O_CREAT | unix.O_EXCL
	}
	path := filepath.Join("/dev/shm", filepath.Base(opts.Name))
	fd, err := unix.Open(path, flags, 0o600)
	if err != nil {
		return nil, fmt.Errorf("shm open %s: %w", path, err)
	}
	size := opts.Size
	if opts.Create {
		if err := unix.Ftruncate(fd, int64(size)); err != nil {
			_ = unix.Close(fd)
			_ = unix.Unlink(path)
			return nil, fmt.Errorf("shm ftruncate %s: %w", path, err)
		}
	} else {
		var st unix.Stat_t
		if err := unix.Fstat(fd, &st); err != nil {
			_ = unix.Close(fd)
			return nil, fmt.Errorf("shm fstat %s: %w", path, err)
		}
		size = int(st.Size)
	}
	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		if opts.Create {
			_ = unix.Unlink(path)
		}
		return nil, fmt.Errorf("shm mmap %s: %w", path, err)
	}
	return &MappedRegion{
		Data:    data,
		Name:    opts.Name,
		Created: opts.Create,
		fd:      fd,
	}, nil
}

// UnmapRegion unmaps and closes the region. Regions this process created
// are also unlinked from /dev/shm.
func UnmapRegion(region *MappedRegion) error {
	if region == nil || region.Data == nil {
		return nil
	}
	if err := unix.Munmap(region.Data); err != nil {
		return fmt.Errorf("shm munmap %s: %w", region.Name, err)
	}
	region.Data = nil
	if err := unix.Close(region.fd); err != nil {
		return fmt.Errorf("shm close %s: %w", region.Name, err)
	}
	if region.Created {
		path := filepath.Join("/dev/shm", filepath.Base(region.Name))
		if err := unix.Unlink(path); err != nil {
			return fmt.Errorf("shm unlink %s: %w", region.Name, err)
		}
	}
	return nil
}
