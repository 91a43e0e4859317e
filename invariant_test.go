// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

package pgalloc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkInvariants is a paranoid, self-verifying check modeled on
// falloc_test.go's pAllocator: after a batch of operations it walks
// every list the Allocator knows about and asserts the invariants
// spec.md §3/§8 require hold at every quiescent point.
func checkInvariants(t *testing.T, a *Allocator) {
	t.Helper()

	seen := map[*Page]bool{}

	for i, head := range a.buckets {
		for p := head; p != nil; p = p.next {
			require.False(t, seen[p], "page must appear in exactly one list")
			seen[p] = true

			require.Less(t, p.Used(), p.Capacity(), "bucket-resident page must have a free block") // I1
			require.EqualValues(t, (i+1)*BlockGranule, p.BlockSize())

			require.Equal(t, p.Capacity(), p.Used()+p.FreeBlocks()+remainingWatermarkBlocks(p), "I2")

			require.False(t, hasCycle(p), "free list must be acyclic") // I5
		}
		if head != nil {
			require.Nil(t, head.prev, "bucket head has no prev")
		}
	}

	for p := a.fullList; p != nil; p = p.next {
		require.False(t, seen[p], "page must appear in exactly one list")
		seen[p] = true

		require.Equal(t, p.Capacity(), p.Used(), "full-list page must be at capacity")
		require.Nil(t, p.freeHead, "full-list page has an empty free list")
	}
}

// remainingWatermarkBlocks counts blocks on p that have never yet been
// handed out from the watermark.
func remainingWatermarkBlocks(p *Page) uint32 {
	arenaLow := uintptr(p.base()) + HeaderSize
	return uint32((p.watermark - arenaLow) / uintptr(p.blockSize))
}

func hasCycle(p *Page) bool {
	slow, fast := p.freeHead, p.freeHead
	for fast != nil {
		fast = readLink(fast)
		if fast == nil {
			return false
		}
		fast = readLink(fast)
		slow = readLink(slow)
		if slow == fast {
			return true
		}
	}
	return false
}

func TestInvariantsUnderRandomWorkload(t *testing.T) {
	a := newTestAllocator()
	rng := rand.New(rand.NewSource(1))

	var live []Ptr
	sizes := []int{1, 8, 9, 64, 63, 512, 4096}

	for step := 0; step < 4000; step++ {
		if len(live) == 0 || rng.Intn(2) == 0 {
			size := sizes[rng.Intn(len(sizes))]
			ptr, err := a.Allocate(size)
			require.NoError(t, err)
			live = append(live, ptr)
		} else {
			idx := rng.Intn(len(live))
			a.Free(live[idx])
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
		}

		if step%50 == 0 {
			checkInvariants(t, a)
		}
	}

	checkInvariants(t, a)
}

func TestAllocatedAddressesAreDistinctAndInArena(t *testing.T) {
	a := newTestAllocator()

	seen := map[uintptr]bool{}
	for i := 0; i < 500; i++ {
		ptr, err := a.Allocate(64)
		require.NoError(t, err)

		addr := uintptr(ptr)
		require.False(t, seen[addr], "every live pointer must be distinct")
		seen[addr] = true

		p := a.PageOf(ptr)
		require.GreaterOrEqual(t, addr, uintptr(p.base())+HeaderSize)
		require.Less(t, addr, uintptr(p.base())+PageSize)
	}
}
