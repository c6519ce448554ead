// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"coeditar.org/core/events"
	"coeditar.org/core/types"
)

// Item implements the [Node] interface and provides the core functionality
// of the tree system. It must be embedded in all higher-level node types.
//
// All items must be created with [New], [NewRoot], [NewOfType] or
// [Relation.NewItem], which set [Item.This], add the item to its owner
// relation and call [Node.Init].
type Item struct {

	// Name is the name of the item. It does not need to be unique among
	// siblings, but it is the key under which the item is serialized,
	// and the key used to find the item during deserialization.
	Name string

	// This is the value of this Node as its true underlying type. This allows
	// methods defined on base types to call methods defined on higher-level types.
	This Node `json:"-"`

	// OnModification is triggered with this node as target
	// whenever this node is invalidated.
	OnModification *events.Event `json:"-"`

	// OnUpdate is triggered with this node as target and the update
	// data whenever this node is updated.
	OnUpdate *events.Event `json:"-"`

	ctx      *Context
	typ      *types.Type
	parent   Node
	relation *Relation
	children *Relation
	updated  State
}

// AsItem returns the [Item] for this Node.
func (it *Item) AsItem() *Item {
	return it
}

// Init is a placeholder implementation of [Node.Init] that does nothing.
func (it *Item) Init() {}

// NodeUpdate is a placeholder implementation of [Node.NodeUpdate] that does nothing.
func (it *Item) NodeUpdate(deltaTime float64, data any) {}

// Context returns the context shared by all items of the tree.
func (it *Item) Context() *Context {
	return it.ctx
}

// Type returns the registered type of the item.
func (it *Item) Type() *types.Type {
	return it.typ
}

// Parent returns the owner of the relation this item belongs to,
// or nil for a root item.
func (it *Item) Parent() Node {
	return it.parent
}

// Relation returns the relation this item was created in, or nil for a root item.
func (it *Item) Relation() *Relation {
	return it.relation
}

// Children returns the aggregate relation of all children of the item.
func (it *Item) Children() *Relation {
	return it.children
}

// Relations returns the relations declared on the item.
func (it *Item) Relations() []*Relation {
	return it.children.relations
}

// RelationByName returns the declared relation with the given name, or nil.
// Relations nested under other relations are searched depth first.
func (it *Item) RelationByName(name string) *Relation {
	return it.children.findRelation(name)
}

// ChildByName returns the first child with the given name, or nil.
func (it *Item) ChildByName(name string) Node {
	return it.children.ByName(name)
}

// NumChildren returns the number of children of the item.
func (it *Item) NumChildren() int {
	return it.children.Count()
}

// State returns the update state of the item.
func (it *Item) State() State {
	return it.updated
}

// Updated returns whether the item is current. Items that were never
// updated and items that were invalidated both need to be updated.
func (it *Item) Updated() bool {
	return it.updated == True
}

// Invalidate marks the item as not updated. It first invalidates the parent,
// recursively up to the root, then triggers the shared and the item's own
// OnModification events, and finally stores the state. It is called whenever
// the value of a leaf item changes.
func (it *Item) Invalidate() {
	if it.parent != nil {
		it.parent.AsItem().Invalidate()
	}
	it.ctx.OnModification.Trigger(it.This, nil)
	it.OnModification.Trigger(it.This, nil)
	it.updated = False
}

// Update updates the item and its children. If the item is already updated
// and forced is false, it returns immediately. Otherwise it triggers the
// item's own and the shared OnUpdate events, calls [Node.NodeUpdate],
// marks the item as updated and then updates all of its children with the
// same arguments. Listeners of the events see the item as not yet updated.
func (it *Item) Update(deltaTime float64, forced bool, data any) {
	if it.updated == True && !forced {
		return
	}
	it.OnUpdate.Trigger(it.This, data)
	it.ctx.OnUpdate.Trigger(it.This, data)
	it.This.NodeUpdate(deltaTime, data)
	it.updated = True
	for _, kid := range it.children.All() {
		kid.AsItem().Update(deltaTime, forced, data)
	}
}

// String returns the path of the item.
func (it *Item) String() string {
	if it == nil || it.This == nil {
		return "nil"
	}
	return it.Path()
}
