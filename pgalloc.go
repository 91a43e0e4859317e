// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

package pgalloc

import (
	"os"
	"unsafe"
)

// Ptr is a pointer into a page's arena, as returned by Allocate and
// accepted by Free and PageOf. It is an alias for unsafe.Pointer because
// the allocator must be able to mask it down to its owning page's base
// address (see Page.base) and to read/write the free-list link word
// stored inside the block itself.
type Ptr = unsafe.Pointer

const (
	// PageSize is the number of bytes in one page. It must be a power of
	// two; pages are acquired aligned to this size so that any interior
	// pointer can be masked down to its owning page's base address.
	PageSize = 8192

	// BlockGranule is the block-size step and the minimum block size, in
	// bytes. It must be at least the width of a pointer on the host, since
	// a free block's own storage carries the free-list link word.
	BlockGranule = 8

	// Buckets is the number of size classes the allocator serves. A
	// request whose size class falls at or beyond Buckets is rejected.
	Buckets = 1024
)

func init() {
	if BlockGranule < ptrSize {
		panic("pgalloc: BlockGranule must be at least the host pointer width")
	}
	if PageSize&(PageSize-1) != 0 {
		panic("pgalloc: PageSize must be a power of two")
	}
}

// MaxUserBytes is the largest request Allocate can satisfy: the page size
// less the in-band header footprint.
var MaxUserBytes = PageSize - int(HeaderSize)

// DefaultAllocator is the package-level Allocator used by the top-level
// Allocate, Free and View functions, mirroring pgalloc's C ancestor's
// global pgalloc/pgfree/pgview API.
var DefaultAllocator = NewAllocator(nil)

// Allocate satisfies bytes from DefaultAllocator. See (*Allocator).Allocate.
func Allocate(bytes int) (Ptr, error) {
	return DefaultAllocator.Allocate(bytes)
}

// Free returns ptr to DefaultAllocator. See (*Allocator).Free.
func Free(ptr Ptr) {
	DefaultAllocator.Free(ptr)
}

// View writes a diagnostic dump of DefaultAllocator to standard output.
func View() error {
	return DefaultAllocator.View(os.Stdout)
}

// PageOf returns the page backing ptr, or nil if ptr is nil. It queries
// DefaultAllocator's pages.
func PageOf(ptr Ptr) *Page {
	return DefaultAllocator.PageOf(ptr)
}
