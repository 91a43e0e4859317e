// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

package pgalloc

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestViewDumpsAllocatedAndFullPages(t *testing.T) {
	a := newTestAllocator()

	capacity := int(capacityFor(64))
	for i := 0; i < capacity+5; i++ {
		_, err := a.Allocate(64)
		require.NoError(t, err)
	}
	_, err := a.Allocate(512)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, a.View(&buf))

	out := buf.String()
	require.Contains(t, out, "size=64")
	require.Contains(t, out, "size=512")
	require.Contains(t, out, "pages=")
}

func TestViewStopsOnCyclicBucketList(t *testing.T) {
	a := newTestAllocator()

	p1, ok := newPage(a.raw, 64)
	require.True(t, ok)
	p2, ok := newPage(a.raw, 64)
	require.True(t, ok)

	// Wire a corrupted two-page cycle directly into bucket 7 (64-byte
	// class) and confirm View still terminates.
	p1.next = p2
	p2.next = p1
	a.buckets[7] = p1

	done := make(chan struct{})
	go func() {
		var buf bytes.Buffer
		_ = a.View(&buf)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("View did not terminate on a cyclic list")
	}
}

func TestViewShowsFreeList(t *testing.T) {
	a := newTestAllocator()

	ptr, err := a.Allocate(64)
	require.NoError(t, err)
	a.Free(ptr)

	var buf bytes.Buffer
	require.NoError(t, a.View(&buf))
	require.True(t, strings.Contains(buf.String(), "free=["))
}
