// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

package pgalloc

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/necheffa/pgalloc/rawpage"
)

// Allocator is a fixed-block-size slab page allocator: it carves pages
// drawn from a rawpage.Source into blocks grouped by size class, and
// recycles freed blocks through each page's intrusive free list.
//
// An Allocator is not safe for concurrent use by more than one
// goroutine; see spec.md §5. The zero value is not usable; construct one
// with NewAllocator.
type Allocator struct {
	raw      rawpage.Source
	buckets  [Buckets]*Page
	fullList *Page
	log      *logrus.Entry
}

// Option configures an Allocator at construction time.
type Option func(*Allocator)

// WithLogger attaches log as the destination for the Allocator's
// lifecycle logging (page creation, exhaustion, full/partial
// transitions, rejected requests).
func WithLogger(log *logrus.Entry) Option {
	return func(a *Allocator) {
		a.log = log
	}
}

// NewAllocator returns a ready-to-use Allocator drawing pages from raw.
// A nil raw selects rawpage.Default(). Without WithLogger, the Allocator
// logs nothing.
func NewAllocator(raw rawpage.Source, opts ...Option) *Allocator {
	if raw == nil {
		raw = rawpage.Default()
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	a := &Allocator{
		raw: raw,
		log: logrus.NewEntry(discard).WithField("component", "pgalloc"),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}
