// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

package pgalloc

import (
	"unsafe"

	"github.com/cznic/mathutil"
	"github.com/google/uuid"

	"github.com/necheffa/pgalloc/rawpage"
)

// ptrSize is the width of a pointer on the host, used only to guard the
// BlockGranule >= pointer-width precondition a free block's link word
// depends on.
const ptrSize = unsafe.Sizeof(uintptr(0))

// Page is the in-band bookkeeping header stored at the base of every
// page. A *Page value is never allocated by Go's own allocator: it is
// obtained by reinterpreting the first HeaderSize bytes of a page
// acquired from a rawpage.Source, so that unsafe.Pointer(page) is always
// exactly the page's base address and masking any interior pointer with
// pageMask recovers it directly.
type Page struct {
	freeHead  unsafe.Pointer // head of the recycled-block chain, or nil
	watermark uintptr        // one past the highest byte never yet handed out
	next      *Page          // sibling link: bucket list or full-page list
	prev      *Page          // sibling link: bucket list or full-page list
	blockSize uint32         // fixed at creation
	used      uint32         // live blocks on this page
	id        uuid.UUID      // diagnostic-only identity, see SPEC_FULL.md D1
}

// HeaderSize is the in-band footprint of a Page header.
var HeaderSize = unsafe.Sizeof(Page{})

// pageMask clears the low bits of an address within a page, recovering
// the page's base address. PageSize is a power of two (enforced in init).
const pageMask = ^uintptr(PageSize - 1)

// base returns p's own address, which is also the page's base address.
func (p *Page) base() unsafe.Pointer {
	return unsafe.Pointer(p)
}

// Capacity returns the maximum number of live blocks this page can hold.
func (p *Page) Capacity() uint32 {
	return capacityFor(p.blockSize)
}

// capacityFor clamps to a minimum of 1: a bucket page is only ever
// installed once it has handed out its first block, so its capacity can
// never legitimately be computed as 0 (spec.md §1's "at least one free
// block" invariant presumes every page holds at least one).
func capacityFor(blockSize uint32) uint32 {
	n := (PageSize - HeaderSize) / uintptr(blockSize)
	return uint32(mathutil.MaxInt64(int64(n), 1))
}

// Used returns the number of currently allocated blocks on p.
func (p *Page) Used() uint32 { return p.used }

// BlockSize returns the fixed block size of p.
func (p *Page) BlockSize() uint32 { return p.blockSize }

// MaxBlocks is an alias for Capacity, matching spec.md's introspection
// naming (max_blocks).
func (p *Page) MaxBlocks() uint32 { return p.Capacity() }

// FreeBlocks walks p's intrusive free list and counts its entries. It is
// O(free-list length), unlike the other introspection accessors.
func (p *Page) FreeBlocks() uint32 {
	var n uint32
	for cur := p.freeHead; cur != nil; cur = readLink(cur) {
		n++
	}
	return n
}

// ID returns the page's diagnostic-only identity.
func (p *Page) ID() uuid.UUID { return p.id }

// readLink reads the pointer-sized link word stored at the base of a
// freed block.
func readLink(block unsafe.Pointer) unsafe.Pointer {
	return *(*unsafe.Pointer)(block)
}

// writeLink writes the pointer-sized link word stored at the base of a
// freed block. Confined to this helper per spec.md §9: intrusive
// free-list manipulation is the one place this package relies on raw
// memory layout rather than Go's normal type system.
func writeLink(block unsafe.Pointer, link unsafe.Pointer) {
	*(*unsafe.Pointer)(block) = link
}

// pageBase masks ptr down to its owning page's base address.
func pageBase(ptr unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(ptr) & pageMask)
}

// pageOf returns the Page backing ptr, or nil if ptr is nil.
func pageOf(ptr unsafe.Pointer) *Page {
	if ptr == nil {
		return nil
	}
	return (*Page)(pageBase(ptr))
}

// newPage acquires a fresh, zeroed page from raw and initializes its
// header for the given block size. It reports failure if raw cannot
// supply a page.
func newPage(raw rawpage.Source, blockSize uint32) (*Page, bool) {
	mem, ok := raw.Acquire(uintptr(PageSize), uintptr(PageSize))
	if !ok {
		return nil, false
	}

	p := (*Page)(mem)
	p.blockSize = blockSize
	p.used = 0
	p.freeHead = nil
	p.watermark = uintptr(mem) + PageSize
	p.next = nil
	p.prev = nil
	p.id = uuid.New()
	return p, true
}
