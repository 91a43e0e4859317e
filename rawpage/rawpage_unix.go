// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

//go:build !windows

package rawpage

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

func defaultSource() Source {
	return NewMmapSource()
}

// MmapSource is a Source backed by anonymous, private mmap regions: the
// POSIX posix_memalign-equivalent path spec.md §6 calls for. Each
// acquisition over-maps by one alignment unit so an aligned region can
// always be carved out of it, and the whole mapping is retained forever
// (mmap regions are never munmap'd), matching pgalloc's never-released
// page policy and keeping the region reachable for the garbage
// collector's purposes regardless of how pgalloc links pages together
// internally.
type MmapSource struct {
	mu       sync.Mutex
	retained [][]byte
}

// NewMmapSource returns a ready-to-use MmapSource.
func NewMmapSource() *MmapSource {
	return &MmapSource{}
}

func (s *MmapSource) Acquire(size, align uintptr) (unsafe.Pointer, bool) {
	if size == 0 || align == 0 {
		return nil, false
	}

	mapping, err := unix.Mmap(-1, 0, int(size+align-1), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, false
	}

	base := uintptr(unsafe.Pointer(&mapping[0]))
	aligned := alignUp(base, align)

	s.mu.Lock()
	s.retained = append(s.retained, mapping)
	s.mu.Unlock()

	return unsafe.Pointer(aligned), true
}
