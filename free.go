// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

package pgalloc

// Free returns ptr, previously obtained from Allocate and not since
// freed, to its owning page's free list. A nil ptr is a no-op. Freeing a
// pointer not obtained from this Allocator, double-freeing, or freeing
// an interior pointer is undefined behavior and is not detected.
func (a *Allocator) Free(ptr Ptr) {
	if ptr == nil {
		return
	}

	p := pageOf(ptr)

	if p.used == p.Capacity() {
		i, _ := bucketIndex(int(p.blockSize))
		a.removeFull(p)
		a.pushBucketHead(i, p)
		a.log.WithField("page", p.id).Debug("page no longer full, returned to bucket")
	}

	writeLink(ptr, p.freeHead)
	p.freeHead = ptr
	p.used--
}
