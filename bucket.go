// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

package pgalloc

// bucketIndex returns the size class serving a request of bytes, per
// spec.md §4.1: the smallest i such that (i+1)*BlockGranule >= bytes.
func bucketIndex(bytes int) (int, error) {
	if bytes <= 0 {
		return 0, &ErrInvalidRequest{Bytes: bytes}
	}
	return (bytes+BlockGranule-1)/BlockGranule - 1, nil
}

// pushBucketHead installs p as the new head of bucket i, linking the
// previous head (if any) behind it. p must not already belong to any
// list.
func (a *Allocator) pushBucketHead(i int, p *Page) {
	head := a.buckets[i]
	p.next = head
	p.prev = nil
	if head != nil {
		head.prev = p
	}
	a.buckets[i] = p
}

// popBucketHead removes bucket i's current head from the bucket list.
// It is only ever called on the page that is itself the head (spec.md
// §4.5: removal from a bucket list happens only at the head, the sole
// case that occurs when a page becomes full).
func (a *Allocator) popBucketHead(i int) {
	p := a.buckets[i]
	a.buckets[i] = p.next
	if p.next != nil {
		p.next.prev = nil
	}
	p.next = nil
	p.prev = nil
}
