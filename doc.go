// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

/*
Package pgalloc implements a fixed-block-size slab page allocator.

It satisfies byte-sized allocation requests by carving PageSize-aligned
pages into uniformly sized blocks, grouping pages by block size in a
bucket table, and recycling freed blocks through an intrusive per-page
free list. It targets workloads that repeatedly allocate and free many
small objects of a bounded number of distinct sizes, trading the
generality of a coalescing allocator for speed and locality.

A page is never returned to the operating system once acquired; a block
may not be resized in place; a single request may not span more than one
page's usable region; and the allocator is not safe for concurrent use
from more than one goroutine. See the Allocator type for the operations
this package exposes, and package rawpage for the pluggable aligned-page
source each Allocator draws from.
*/
package pgalloc
