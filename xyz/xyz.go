// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyz is the schema of a shared augmented reality application:
// an [App] holds the [Space]s that users can be present in, the [User]s
// with their [Presence]s, and the [View]s that render a space from the
// point of view of a presence. Every part is a tree node built from the
// value types of package values, so the whole application state can be
// serialized, deserialized and updated incrementally.
package xyz

import (
	"errors"

	"coeditar.org/core/render"
	"coeditar.org/core/tree"
)

// ErrUnsupportedVersion is returned by [App.CheckVersion] when the data
// version of the app is not supported.
var ErrUnsupportedVersion = errors.New("xyz: unsupported data version")

// ErrNoSpace is returned when rendering a view whose space does not exist.
var ErrNoSpace = errors.New("xyz: no space")

// Representer is implemented by nodes that have a render representation.
type Representer interface {
	Representation() *render.Representation
}

// Entityer is implemented by all entity types, which embed [Entity].
type Entityer interface {
	tree.Node
	AsEntity() *Entity
}

// Register registers all of the node types of the package in the given
// context, surfacing type name collisions as an error.
func Register(ctx *tree.Context) error {
	return ctx.Register(&App{}, &Space{}, &Entity{}, &SpaceEntity{}, &Behavior{}, &User{}, &Presence{}, &View{})
}

// AsEntity returns the given node as an entity, or nil if it is not one.
func AsEntity(n tree.Node) *Entity {
	if e, ok := n.(Entityer); ok {
		return e.AsEntity()
	}
	return nil
}
