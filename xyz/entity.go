// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"coeditar.org/core/base/errors"
	"coeditar.org/core/render"
	"coeditar.org/core/tree"
	"coeditar.org/core/values"
)

// Entity is an object placed in a space, with a pose relative to its
// parent entity or space, behaviors, and child entities.
// Its render representation follows its pose on every update.
type Entity struct {
	tree.Item

	// Position is the position relative to the parent, in meters.
	Position *values.Vector

	// Rotation is the rotation relative to the parent.
	Rotation *values.Euler

	// Scale is the scale relative to the parent, 1 by default.
	Scale *values.Vector

	// Visible is whether the entity and its children are rendered,
	// true by default.
	Visible *values.Boolean

	// Behaviors are the behaviors that run the scripts of the entity.
	Behaviors *tree.Relation

	// Entities are the child entities.
	Entities *tree.Relation

	repr *render.Representation
}

// AsEntity returns the entity.
func (e *Entity) AsEntity() *Entity {
	return e
}

func (e *Entity) Init() {
	e.Position = tree.New[*values.Vector](e.Children(), "position")
	e.Rotation = tree.New[*values.Euler](e.Children(), "rotation")
	e.Scale = tree.New[*values.Vector](e.Children(), "scale")
	errors.Log(e.Scale.SetDefaults(1, 1, 1))
	e.Visible = tree.New[*values.Boolean](e.Children(), "visible")
	errors.Log(e.Visible.SetDefault(true))
	e.Behaviors = tree.NewRelation[*Behavior](e, "behaviors")
	e.Entities = tree.NewRelation[*Entity](e, "entities")

	e.repr = render.NewRepresentation(e.Name)
	e.repr.Object = e.This
	if p, ok := e.Parent().(Representer); ok {
		p.Representation().Add(e.repr)
	}
}

// Representation returns the render representation of the entity.
func (e *Entity) Representation() *render.Representation {
	return e.repr
}

// NewEntity creates a new child entity with the given name.
func (e *Entity) NewEntity(name string) *Entity {
	return tree.New[*Entity](e.Entities, name)
}

// NewBehavior creates a new behavior with the given name
// running the given start and update scripts, which may be empty.
func (e *Entity) NewBehavior(name, start, update string) *Behavior {
	b := tree.New[*Behavior](e.Behaviors, name)
	if start != "" {
		errors.Log(b.Start.SetValue(start))
	}
	if update != "" {
		errors.Log(b.UpdateScript.SetValue(update))
	}
	return b
}

// SyncRepresentation copies the pose and visibility of the entity
// to its render representation.
func (e *Entity) SyncRepresentation() {
	e.repr.SetPose(e.Position.Array3(), e.Rotation.Array3(), e.Rotation.Order.Value(), e.Scale.Array3())
	e.repr.Visible = e.Visible.Value()
}

func (e *Entity) NodeUpdate(deltaTime float64, data any) {
	e.SyncRepresentation()
}

// Step runs the behaviors of the entity and of all of its descendant
// entities, depth first. Script errors are logged.
func (e *Entity) Step(deltaTime float64) {
	for _, b := range e.Behaviors.All() {
		errors.Log(b.(*Behavior).Run(deltaTime))
	}
	for _, kid := range e.Entities.All() {
		AsEntity(kid).Step(deltaTime)
	}
}

// SpaceEntity is an entity at the top level of a space, with
// bounds that it occupies in the space.
type SpaceEntity struct {
	Entity

	// Width is the extent along the x axis, 1 m by default.
	Width *values.Distance

	// Height is the extent along the y axis, 1 m by default.
	Height *values.Distance

	// Depth is the extent along the z axis, 1 m by default.
	Depth *values.Distance
}

func (se *SpaceEntity) Init() {
	se.Entity.Init()
	se.Width = tree.New[*values.Distance](se.Children(), "width")
	se.Height = tree.New[*values.Distance](se.Children(), "height")
	se.Depth = tree.New[*values.Distance](se.Children(), "depth")
	for _, d := range []*values.Distance{se.Width, se.Height, se.Depth} {
		errors.Log(d.SetRange(0, 1e7))
		errors.Log(d.SetDefault(1))
	}
}

// Bounds returns the width, height and depth in meters.
func (se *SpaceEntity) Bounds() [3]float64 {
	return [3]float64{se.Width.Value(), se.Height.Value(), se.Depth.Value()}
}
