// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"errors"
	"fmt"
	"reflect"

	"coeditar.org/core/events"
	"coeditar.org/core/types"
)

// admin.go has infrastructure code outside of the Node interface.

// New returns a new node of type T with the given name, created in the given
// owner relation. The node becomes a child of the owner of the relation.
// It panics if the type of T can not be registered; use [Context.Register]
// at startup to catch such errors earlier.
//
//	e.Position = tree.New[*values.Vector](e.Children(), "position")
func New[T Node](owner *Relation, name string) T {
	if owner == nil {
		panic("tree.New: nil owner relation; use NewRoot for root nodes")
	}
	n := newInstance[T]()
	if err := initNode(owner.owner.AsItem().ctx, n, owner, name); err != nil {
		panic(err)
	}
	return n
}

// NewRoot returns a new root node of type T with the given name
// in the given context. It panics if the type of T can not be registered.
func NewRoot[T Node](ctx *Context, name string) T {
	n := newInstance[T]()
	if err := initNode(ctx, n, nil, name); err != nil {
		panic(err)
	}
	return n
}

// NewOfType returns a new node of the given type with the given name,
// created in the given owner relation, which may be nil for a root node.
func NewOfType(ctx *Context, typ *types.Type, owner *Relation, name string) (Node, error) {
	n, ok := typ.New().(Node)
	if !ok {
		return nil, fmt.Errorf("tree: type %s is not a Node", typ.Name)
	}
	if err := initNode(ctx, n, owner, name); err != nil {
		return nil, err
	}
	return n, nil
}

// Clone returns a new node of the same type as the given node, with the
// given name, created in the given owner relation (nil for a new root in
// the same context), holding a copy of the data of the given node,
// including the members of its relations.
func Clone(n Node, owner *Relation, name string) (Node, error) {
	it := n.AsItem()
	data := n.Serialize(ModeTree)
	c, err := NewOfType(it.ctx, it.typ, owner, name)
	if err != nil {
		return nil, err
	}
	if err := c.Deserialize(data, ModeTree); err != nil {
		return nil, err
	}
	return c, nil
}

func newInstance[T Node]() T {
	var n T
	rt := reflect.TypeOf(n)
	if rt == nil || rt.Kind() != reflect.Pointer {
		panic(fmt.Sprintf("tree: node type %v must be a pointer type", rt))
	}
	return reflect.New(rt.Elem()).Interface().(T)
}

// initNode initializes the given new node: it sets its name, type,
// context and events, creates its children relation, adds it to the
// owner relation, calls [Node.Init] and triggers [Context.OnCreation].
func initNode(ctx *Context, n Node, owner *Relation, name string) error {
	if ctx == nil {
		return errors.New("tree: nil context")
	}
	typ, err := ctx.Types.TypeOf(n)
	if err != nil {
		return err
	}
	it := n.AsItem()
	it.This = n
	it.Name = name
	it.ctx = ctx
	it.typ = typ
	it.OnModification = events.MustNew("modification")
	it.OnUpdate = events.MustNew("update")
	it.children = newRelation(n, "children", nil)
	ctx.Types.AddInstance(typ, n)
	if owner != nil {
		it.parent = owner.owner
		it.relation = owner
		owner.Add(n)
	}
	n.Init()
	ctx.OnCreation.Trigger(n, nil)
	return nil
}

// IsRoot returns whether the given node is the root of its tree.
func IsRoot(n Node) bool {
	return n.AsItem().parent == nil
}

// Root returns the root node of the tree of the given node.
func Root(n Node) Node {
	for n.AsItem().parent != nil {
		n = n.AsItem().parent
	}
	return n
}

// ParentByType returns the closest ancestor of the given node that is of
// type T, or the zero value if there is none.
func ParentByType[T Node](n Node) T {
	for p := n.AsItem().parent; p != nil; p = p.AsItem().parent {
		if t, ok := p.(T); ok {
			return t
		}
	}
	var zv T
	return zv
}
