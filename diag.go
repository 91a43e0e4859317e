// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

package pgalloc

import (
	"fmt"
	"io"
)

// View writes a human-readable dump of every page the Allocator manages
// to w: one line per page in each bucket list, then one line per page in
// the full-page list, followed by a summary line. Traversal of a list
// stops if it revisits the page it started at, so a corrupted list that
// loops back to its own head cannot hang View; a loop that does not pass
// through the head is not detected. View is read-only.
func (a *Allocator) View(w io.Writer) error {
	var totalPages, totalUsed int

	for _, head := range a.buckets {
		if head == nil {
			continue
		}
		n, used, err := dumpList(w, head)
		if err != nil {
			return err
		}
		totalPages += n
		totalUsed += used
	}

	n, used, err := dumpList(w, a.fullList)
	if err != nil {
		return err
	}
	totalPages += n
	totalUsed += used

	_, err = fmt.Fprintf(w, "pages=%d used=%d\n", totalPages, totalUsed)
	return err
}

// dumpList walks a single bucket or full-page list starting at head,
// printing one line per page, and returns how many pages and live
// blocks it saw.
func dumpList(w io.Writer, head *Page) (pages, used int, err error) {
	for p := head; p != nil; p = p.next {
		if _, err = fmt.Fprintf(w, "page=%s base=%p size=%d max=%d used=%d watermark=%#x",
			p.id, p.base(), p.blockSize, p.Capacity(), p.used, p.watermark); err != nil {
			return
		}

		if p.used < p.Capacity() {
			if err = dumpFreeList(w, p); err != nil {
				return
			}
		}

		if _, err = fmt.Fprintln(w); err != nil {
			return
		}

		pages++
		used += int(p.used)

		if p.next == head {
			// A corrupted list looped back on itself; stop instead of
			// spinning forever.
			break
		}
	}
	return
}

// dumpFreeList prints p's free-block chain, stopping if it ever revisits
// the chain's own starting address.
func dumpFreeList(w io.Writer, p *Page) error {
	if _, err := fmt.Fprint(w, " free=["); err != nil {
		return err
	}

	start := p.freeHead
	for cur := p.freeHead; cur != nil; cur = readLink(cur) {
		if _, err := fmt.Fprintf(w, "%p ", cur); err != nil {
			return err
		}
		if next := readLink(cur); next == start {
			break
		}
	}

	_, err := fmt.Fprint(w, "]")
	return err
}
