// Copyright (C) 2024 Alexander Necheff
// This program is licensed under the terms of the LGPLv3.
// See the COPYING and COPYING.LESSER files that came packaged with this source code for the full terms.

package pgalloc

// pushFullHead installs p as the new head of the global full-page list.
// Traversal order of the full list is not externally observed (spec.md
// §4.5), so insertion always happens at the head regardless of where a
// page is later removed from.
func (a *Allocator) pushFullHead(p *Page) {
	head := a.fullList
	p.next = head
	p.prev = nil
	if head != nil {
		head.prev = p
	}
	a.fullList = p
}

// removeFull unlinks p from the full-page list, wherever in the list it
// sits: a page can leave the full list as soon as any one of its blocks
// is freed, not only when it is the current head.
func (a *Allocator) removeFull(p *Page) {
	if p.prev != nil {
		p.prev.next = p.next
	} else {
		a.fullList = p.next
	}
	if p.next != nil {
		p.next.prev = p.prev
	}
	p.next = nil
	p.prev = nil
}
