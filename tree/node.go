// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides the generic typed tree system, centered on the
// [Node] interface and the [Item] base type that all node types embed.
//
// Items own named [Relation]s of child items. Every relation of an item
// nests under its aggregate children relation, so children can be queried
// both by relation and in aggregate. Invalidating an item marks it and all
// of its ancestors as not updated, so that a single call to [Item.Update]
// on the root refreshes exactly the subtree that changed. Items serialize
// to and deserialize from nested ordered maps (see [ordmap.Map]).
package tree

import (
	"fmt"
	"strings"
)

// Node is an interface that all tree nodes satisfy. The core functionality
// of a tree node is defined on [Item], and all higher-level node types
// must embed it. This interface only contains the functionality that
// higher-level node types may need to override.
// All values that implement Node are pointer values.
type Node interface {

	// AsItem returns the [Item] of this Node. Most core
	// tree functionality is implemented on [Item].
	AsItem() *Item

	// Init is called once when the node is created, after it has been
	// added to its owner relation. It is the place where node types
	// declare their relations and create their fixed child items.
	// Types embedding another node type must call the embedded Init first.
	Init()

	// Serialize returns the plain data representation of the node:
	// an [ordmap.Map] for structured nodes, a scalar value for leaf
	// nodes, or nil if the node has nothing to serialize.
	Serialize(mode Mode) any

	// Deserialize applies the given data to the node. See [Item.Deserialize].
	Deserialize(data any, mode Mode) error

	// NodeUpdate is called by [Item.Update] after the update events have
	// been triggered and before the node is marked as updated.
	// It does nothing by default.
	NodeUpdate(deltaTime float64, data any)
}

// Mode is the serialization mode.
type Mode int32

const (
	// ModeFull includes every child in the output, even those that have no value.
	ModeFull Mode = iota

	// ModeSimple omits children that have no explicit value,
	// producing sparse output.
	ModeSimple

	// ModeTree is like ModeFull, except that the members of the declared
	// relations of an item are output as a sequence under the relation name,
	// so that deserializing the output into a new tree grows the relations.
	ModeTree
)

var modeNames = []string{"full", "simple", "tree"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", m)
	}
	return modeNames[m]
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	for i, nm := range modeNames {
		if strings.EqualFold(nm, s) {
			return Mode(i), nil
		}
	}
	return ModeFull, fmt.Errorf("tree: unknown serialization mode %q", s)
}

// State is the update state of an [Item].
type State int32

const (
	// Unset is the state of an item that has never been updated or invalidated.
	Unset State = iota

	// False is the state of an item that has been invalidated.
	False

	// True is the state of an item that is current.
	True
)

func (s State) String() string {
	switch s {
	case False:
		return "false"
	case True:
		return "true"
	}
	return "unset"
}
