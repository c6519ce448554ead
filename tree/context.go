// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"coeditar.org/core/events"
	"coeditar.org/core/types"
)

// Context holds the state shared by all items of one application:
// the type registry and the broadcasters that are triggered for every item.
// It is created once at startup and passed to [NewRoot]; all descendants
// of a root share its context.
type Context struct {

	// Types is the type registry for all nodes of this context.
	Types *types.Registry

	// OnCreation is triggered with the new node as target
	// after every node is created and initialized.
	OnCreation *events.Event

	// OnModification is triggered with the node as target whenever
	// any node is invalidated, before its own OnModification event.
	OnModification *events.Event

	// OnUpdate is triggered with the node as target and the update
	// data whenever any node is updated, after its own OnUpdate event.
	OnUpdate *events.Event
}

// NewContext returns a new context with a new empty type registry.
func NewContext() *Context {
	return &Context{
		Types:          types.NewRegistry(),
		OnCreation:     events.MustNew("creation"),
		OnModification: events.MustNew("modification"),
		OnUpdate:       events.MustNew("update"),
	}
}

// Register registers the types of the given node values in the context,
// returning the first error. Registering all node types at startup
// surfaces type name collisions as errors instead of at node creation.
func (c *Context) Register(nodes ...Node) error {
	for _, n := range nodes {
		if _, err := c.Types.TypeOf(n); err != nil {
			return err
		}
	}
	return nil
}

// TypeOf returns the type of the given node, registering it if needed.
// It panics on a type name collision, which is a configuration error.
func (c *Context) TypeOf(n Node) *types.Type {
	t, err := c.Types.TypeOf(n)
	if err != nil {
		panic(err)
	}
	return t
}
