// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handle

import (
	"github.com/cpmech/gosl/chk"
)

// Keyed is implemented by anything storable in a Table: it must be able to
// report and accept its own handle.
type Keyed[H ~uint32] interface {
	Handle() H
	SetHandle(H)
}

// Table is a contiguous, insertion-ordered sequence of items keyed by a
// handle of type H. Ordering is the living items' insertion order, which is
// what determines regeneration order for groups (§4.2).
//
// Deletion is two-phase: Tag marks items for removal, RemoveTagged sweeps
// them, so that a caller iterating with Each can decide removals mid-scan
// without invalidating the slice it is walking.
type Table[H ~uint32, V Keyed[H]] struct {
	items  []V
	tagged map[H]bool
	next   uint32
}

// NewTable returns an empty table whose auto-assigned handles start at one
// (handle zero is always reserved, per §3.1).
func NewTable[H ~uint32, V Keyed[H]]() *Table[H, V] {
	return &Table[H, V]{tagged: make(map[H]bool)}
}

// Add appends v, auto-assigning it the next unused handle.
func (t *Table[H, V]) Add(v V) H {
	t.next++
	h := H(t.next)
	v.SetHandle(h)
	t.items = append(t.items, v)
	return h
}

// AddKeepHandle appends v without touching its handle, which the caller has
// already set (used when restoring handles from a save file, §6.2).
func (t *Table[H, V]) AddKeepHandle(v V) {
	if uint32(v.Handle()) > t.next {
		t.next = uint32(v.Handle())
	}
	t.items = append(t.items, v)
}

// FindByHandle returns the item with handle h and true, or the zero value
// and false on a miss.
func (t *Table[H, V]) FindByHandle(h H) (V, bool) {
	for _, v := range t.items {
		if v.Handle() == h {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// MustFindByHandle is the asserting lookup: it panics via chk.Panic if h is
// not present, for call sites where a miss is a programmer error (§7).
func (t *Table[H, V]) MustFindByHandle(h H) V {
	v, ok := t.FindByHandle(h)
	if !ok {
		chk.Panic("handle: no such handle %v in table", uint32(h))
	}
	return v
}

// Tag marks h for removal on the next RemoveTagged.
func (t *Table[H, V]) Tag(h H) { t.tagged[h] = true }

// ClearTags forgets all pending tags without removing anything.
func (t *Table[H, V]) ClearTags() { t.tagged = make(map[H]bool) }

// RemoveTagged sweeps out every tagged item, preserving the relative order
// of survivors, and clears the tag set.
func (t *Table[H, V]) RemoveTagged() {
	if len(t.tagged) == 0 {
		return
	}
	kept := t.items[:0]
	for _, v := range t.items {
		if !t.tagged[v.Handle()] {
			kept = append(kept, v)
		}
	}
	t.items = kept
	t.ClearTags()
}

// Each calls fn for every living item in insertion order.
func (t *Table[H, V]) Each(fn func(V)) {
	for _, v := range t.items {
		fn(v)
	}
}

// Len reports the number of living items.
func (t *Table[H, V]) Len() int { return len(t.items) }

// Items returns the live items in insertion order; callers must not mutate
// the returned slice's length.
func (t *Table[H, V]) Items() []V { return t.items }

// DeepCopy returns an independent table with the same items and handle
// counter, using clone to duplicate each item (Param/Entity/etc. hold
// their own DeepCopy method so the table stays agnostic of V's internals).
func (t *Table[H, V]) DeepCopy(clone func(V) V) *Table[H, V] {
	out := &Table[H, V]{
		items:  make([]V, len(t.items)),
		tagged: make(map[H]bool),
		next:   t.next,
	}
	for i, v := range t.items {
		out.items[i] = clone(v)
	}
	return out
}
