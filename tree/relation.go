// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/samber/lo"

	"coeditar.org/core/types"
)

// Relation is a named, ordered collection of items owned by an item.
// A relation can be nested under a parent relation, in which case every
// item added to it is also added to the parent, transitively. All relations
// declared on an item nest under the item's aggregate children relation.
type Relation struct {
	Collection[Node]

	name      string
	owner     Node
	types     []*types.Type
	parent    *Relation
	relations []*Relation
}

// NewRelation returns a new relation with the given name owned by the given
// node, nested under the owner's children relation, holding items of the
// type T. It is typically called in [Node.Init]:
//
//	e.Behaviors = tree.NewRelation[*Behavior](e, "behaviors")
func NewRelation[T Node](owner Node, name string) *Relation {
	var n T
	return NewRelationOf(owner, name, n)
}

// NewRelationOf returns a new relation like [NewRelation], holding items of
// the types of the given prototype nodes. The first type is the one that is
// created when the relation grows during deserialization. The prototypes
// may be typed nil pointers.
func NewRelationOf(owner Node, name string, protos ...Node) *Relation {
	it := owner.AsItem()
	ts := lo.Map(protos, func(p Node, _ int) *types.Type { return it.ctx.TypeOf(p) })
	return newRelation(owner, name, it.children, ts...)
}

// NewSubRelation returns a new relation like [NewRelationOf], nested under
// the given parent relation instead of the owner's children relation.
// Items added to it are also added to the parent relation and to all of
// the parent's ancestor relations.
func NewSubRelation(parent *Relation, name string, protos ...Node) *Relation {
	it := parent.owner.AsItem()
	ts := lo.Map(protos, func(p Node, _ int) *types.Type { return it.ctx.TypeOf(p) })
	return newRelation(parent.owner, name, parent, ts...)
}

func newRelation(owner Node, name string, parent *Relation, ts ...*types.Type) *Relation {
	owner = owner.AsItem().This
	r := &Relation{name: name, owner: owner, types: ts, parent: parent}
	if parent != nil {
		parent.relations = append(parent.relations, r)
	}
	return r
}

// Name returns the name of the relation.
func (r *Relation) Name() string {
	return r.name
}

// Owner returns the node that owns the relation.
func (r *Relation) Owner() Node {
	return r.owner
}

// Parent returns the relation this relation is nested under, if any.
func (r *Relation) Parent() *Relation {
	return r.parent
}

// Types returns the declared item types of the relation.
func (r *Relation) Types() []*types.Type {
	return r.types
}

// Relations returns the relations nested under this relation.
func (r *Relation) Relations() []*Relation {
	return r.relations
}

// RelationByName returns the nested relation with the given name, or nil.
func (r *Relation) RelationByName(name string) *Relation {
	rel, _ := lo.Find(r.relations, func(rl *Relation) bool { return rl.name == name })
	return rel
}

// findRelation returns the first relation with the given name in the tree
// of relations nested under r, in depth-first order, or nil.
func (r *Relation) findRelation(name string) *Relation {
	for _, rl := range r.relations {
		if rl.name == name {
			return rl
		}
		if sub := rl.findRelation(name); sub != nil {
			return sub
		}
	}
	return nil
}

// Add adds the given node to the relation and to its parent relation,
// transitively.
func (r *Relation) Add(n Node) {
	r.Collection.Add(n)
	if r.parent != nil {
		r.parent.Add(n)
	}
}

// Accepts returns whether the given node is of one of the declared types
// of the relation. A relation without declared types accepts any node.
func (r *Relation) Accepts(n Node) bool {
	if len(r.types) == 0 {
		return true
	}
	nt := n.AsItem().Type()
	return lo.ContainsBy(r.types, func(t *types.Type) bool { return nt.IsType(t) })
}

// ByName returns the first item in the relation with the given name, or nil.
func (r *Relation) ByName(name string) Node {
	n, _ := lo.Find(r.items, func(n Node) bool { return n.AsItem().Name == name })
	return n
}

// IndexOf returns the index of the given node in the relation, or -1.
func (r *Relation) IndexOf(n Node) int {
	return lo.IndexOf(r.items, n)
}

// Names returns the names of all items in the relation.
func (r *Relation) Names() []string {
	return lo.Map(r.items, func(n Node, _ int) string { return n.AsItem().Name })
}

// OfType returns the items of the relation that are of the given type
// or derive from it.
func (r *Relation) OfType(t *types.Type) []Node {
	return lo.Filter(r.items, func(n Node, _ int) bool { return n.AsItem().Type().IsType(t) })
}

// NewItem creates a new item of the first declared type of the relation,
// with the given name, and adds it to the relation. If the name is empty,
// it defaults to the ID name of the type followed by the index of the item.
func (r *Relation) NewItem(name string) (Node, error) {
	if len(r.types) == 0 {
		return nil, fmt.Errorf("tree: relation %q of %s has no declared type", r.name, r.owner.AsItem().Path())
	}
	typ := r.types[0]
	if name == "" {
		name = typ.IDName + "-" + strconv.Itoa(r.Count())
	}
	n, err := NewOfType(r.owner.AsItem().ctx, typ, r, name)
	if err != nil {
		return nil, err
	}
	slog.Debug("tree: relation grew", "relation", r.name, "owner", r.owner.AsItem().Path(), "item", name, "count", r.Count())
	return n, nil
}

func (r *Relation) String() string {
	return r.name + "(" + strconv.Itoa(r.Count()) + ")"
}
