// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

package pgalloc

import "unsafe"

// Allocate returns a pointer to at least bytes bytes of uninitialized
// storage within some page's arena, or an error if the request cannot be
// satisfied. A freshly freed block may be returned by the very next
// same-size-class Allocate call (spec.md §5).
func (a *Allocator) Allocate(bytes int) (Ptr, error) {
	if bytes > MaxUserBytes {
		err := &ErrInvalidRequest{Bytes: bytes}
		a.log.WithField("bytes", bytes).Warn("request exceeds MaxUserBytes")
		return nil, err
	}

	i, err := bucketIndex(bytes)
	if err != nil {
		a.log.WithField("bytes", bytes).Warn("rejecting request")
		return nil, err
	}
	if i >= Buckets {
		err := &ErrInvalidRequest{Bytes: bytes}
		a.log.WithField("bytes", bytes).Warn("request exceeds Buckets size classes")
		return nil, err
	}

	blockSize := uint32((i + 1) * BlockGranule)

	p := a.buckets[i]
	if p == nil {
		return a.allocateFromNewPage(i, blockSize)
	}

	if p.freeHead != nil {
		return a.allocateFromFreeList(i, p), nil
	}

	return a.allocateFromWatermark(i, p), nil
}

// allocateFromNewPage handles an empty bucket: it creates a page, hands
// out its first block from the watermark, and installs the page either
// as the bucket head (capacity > 1) or directly in the full-page list
// (capacity == 1, a single-block page is full the instant it is used).
func (a *Allocator) allocateFromNewPage(i int, blockSize uint32) (Ptr, error) {
	p, ok := newPage(a.raw, blockSize)
	if !ok {
		err := &ErrExhausted{BlockSize: blockSize}
		a.log.WithField("blockSize", blockSize).Error("raw page source exhausted")
		return nil, err
	}

	p.watermark -= uintptr(blockSize)
	p.used = 1

	if p.Capacity() == 1 {
		a.pushFullHead(p)
	} else {
		a.pushBucketHead(i, p)
	}

	a.log.WithFields(map[string]interface{}{
		"page":      p.id,
		"blockSize": blockSize,
		"capacity":  p.Capacity(),
	}).Debug("created page")

	return unsafe.Pointer(p.watermark), nil
}

// allocateFromFreeList pops the head of p's intrusive free list. If that
// exhausts the page's remaining capacity, p is promoted to the full-page
// list.
func (a *Allocator) allocateFromFreeList(i int, p *Page) Ptr {
	ptr := p.freeHead
	p.freeHead = readLink(ptr)
	p.used++

	if p.used == p.Capacity() {
		a.popBucketHead(i)
		a.pushFullHead(p)
		a.log.WithField("page", p.id).Debug("page full, moved to full list")
	}

	return ptr
}

// allocateFromWatermark hands out the next never-before-used block on p.
// If that exhausts p's remaining capacity, p is promoted to the
// full-page list.
func (a *Allocator) allocateFromWatermark(i int, p *Page) Ptr {
	p.watermark -= uintptr(p.blockSize)
	p.used++

	if p.used == p.Capacity() {
		a.popBucketHead(i)
		a.pushFullHead(p)
		a.log.WithField("page", p.id).Debug("page full, moved to full list")
	}

	return unsafe.Pointer(p.watermark)
}
