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

// Space is a place shared by the users present in it, holding entities.
// Its scene root is the render representation that the representations
// of its entities and presences are attached to.
type Space struct {
	tree.Item

	// Description is a free text description of the space.
	Description *values.String

	// Size is the extent of the space in meters.
	Size *values.Vector

	// Entities are the top level entities of the space,
	// which are [SpaceEntity] values unless created otherwise.
	Entities *tree.Relation

	scene *render.Representation
}

func (s *Space) Init() {
	s.Description = tree.New[*values.String](s.Children(), "description")
	s.Size = tree.New[*values.Vector](s.Children(), "size")
	errors.Log(s.Size.SetRanges(0, 1e7))
	errors.Log(s.Size.SetDefaults(10, 3, 10))
	s.Entities = tree.NewRelationOf(s, "entities", (*SpaceEntity)(nil), (*Entity)(nil))
	s.scene = render.NewRepresentation(s.Name)
	s.scene.Object = s.This
}

// SceneRoot returns the root of the render representations of the space.
func (s *Space) SceneRoot() *render.Representation {
	return s.scene
}

// Representation returns the scene root.
func (s *Space) Representation() *render.Representation {
	return s.scene
}

// NewEntity creates a new top level space entity with the given name.
func (s *Space) NewEntity(name string) *SpaceEntity {
	return tree.New[*SpaceEntity](s.Entities, name)
}

// Entity returns the top level entity with the given name, or nil.
func (s *Space) Entity(name string) *Entity {
	n := s.Entities.ByName(name)
	if n == nil {
		return nil
	}
	return AsEntity(n)
}

// Step runs the behaviors of all of the entities of the space.
func (s *Space) Step(deltaTime float64) {
	for _, n := range s.Entities.All() {
		AsEntity(n).Step(deltaTime)
	}
}

// Presences returns the presences of the users of the app
// that are in the space.
func (s *Space) Presences() []*Presence {
	app := tree.ParentByType[*App](s)
	if app == nil {
		return nil
	}
	var ps []*Presence
	for _, u := range app.Users.All() {
		for _, p := range u.(*User).Presences.All() {
			if pr := p.(*Presence); pr.Space.Value() == s.Name {
				ps = append(ps, pr)
			}
		}
	}
	return ps
}
