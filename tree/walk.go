// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"strconv"
	"strings"
)

const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)

// EscapePathName returns a name that replaces any / with \\
func EscapePathName(name string) string {
	return strings.ReplaceAll(name, "/", `\\`)
}

// UnescapePathName returns a name that replaces any \\ with /
func UnescapePathName(name string) string {
	return strings.ReplaceAll(name, `\\`, "/")
}

// Path returns the path to this item from the tree root,
// using item names separated by / delimiters.
func (it *Item) Path() string {
	if it.parent != nil {
		return it.parent.AsItem().Path() + "/" + EscapePathName(it.Name)
	}
	return "/" + EscapePathName(it.Name)
}

// FindPath returns the node at the given path relative to this item,
// in the format produced by [Item.Path] without the leading root element.
// Index-based access (ie: [0] for the first child) is also supported.
// It returns nil if no node is found at the given path.
func (it *Item) FindPath(path string) Node {
	cur := it.This
	for _, pe := range strings.Split(strings.TrimSpace(path), "/") {
		if pe == "" {
			continue
		}
		ci := cur.AsItem()
		if pe[0] == '[' && pe[len(pe)-1] == ']' {
			idx, err := strconv.Atoi(pe[1 : len(pe)-1])
			if err != nil {
				return nil
			}
			if idx < 0 {
				idx += ci.children.Count()
			}
			kid, ok := ci.children.GetByIndex(idx)
			if !ok {
				return nil
			}
			cur = kid
			continue
		}
		kid := ci.ChildByName(UnescapePathName(pe))
		if kid == nil {
			return nil
		}
		cur = kid
	}
	return cur
}

// WalkDown calls the given function on the item and all of its descendants
// in depth-first order. It stops walking the current branch of the tree if
// the function returns [Break] and keeps walking if it returns [Continue].
func (it *Item) WalkDown(fun func(n Node) bool) {
	if !fun(it.This) {
		return
	}
	for _, kid := range it.children.All() {
		kid.AsItem().WalkDown(fun)
	}
}

// WalkUp calls the given function on the item and all of its ancestors.
// It stops walking if the function returns [Break]. It returns whether
// walking was finished (false if it was aborted with [Break]).
func (it *Item) WalkUp(fun func(n Node) bool) bool {
	for cur := it.This; cur != nil; cur = cur.AsItem().parent {
		if !fun(cur) {
			return false
		}
	}
	return true
}

// WalkUpParent is like [Item.WalkUp] but it does not call
// the function on the item itself.
func (it *Item) WalkUpParent(fun func(n Node) bool) bool {
	if it.parent == nil {
		return true
	}
	return it.parent.AsItem().WalkUp(fun)
}
