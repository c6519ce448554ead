// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"iter"
)

// Collection is an ordered, indexable container of items
// that preserves insertion order. The zero value is ready to use.
type Collection[T any] struct {
	items []T
}

// Add appends the given item to the end of the collection.
func (c *Collection[T]) Add(item T) {
	c.items = append(c.items, item)
}

// Count returns the number of items in the collection.
func (c *Collection[T]) Count() int {
	return len(c.items)
}

// GetByIndex returns the item at the given index, and false
// if the index is outside of [0, Count).
func (c *Collection[T]) GetByIndex(i int) (T, bool) {
	if i < 0 || i >= len(c.items) {
		var zv T
		return zv, false
	}
	return c.items[i], true
}

// Index returns the item at the given index, or the zero
// value if the index is out of range.
func (c *Collection[T]) Index(i int) T {
	v, _ := c.GetByIndex(i)
	return v
}

// All returns an iterator over the index and item of every item in
// insertion order. It is a forward cursor over the current backing
// store; items added during iteration may or may not be visited.
func (c *Collection[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < len(c.items); i++ {
			if !yield(i, c.items[i]) {
				return
			}
		}
	}
}

// Slice returns the items as a slice. It must not be modified.
func (c *Collection[T]) Slice() []T {
	return c.items
}
