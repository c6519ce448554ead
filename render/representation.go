// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render defines the contract between the data tree and a renderer:
// a hierarchy of [Representation] objects that entities attach to a scene
// root and position, a [Camera] with lens parameters, and a [Renderer] that
// draws a scene from a camera. [Headless] is an in-memory renderer.
package render

// Representation is the renderable counterpart of a node in the data tree.
// Representations form their own hierarchy under a scene root.
type Representation struct {

	// Name is the name of the representation, usually the name of its node.
	Name string

	// Pose is the position and orientation relative to the parent.
	Pose Pose

	// Visible is whether the representation and its children are drawn.
	Visible bool

	// Object is the node represented, if any.
	Object any

	parent   *Representation
	children []*Representation
}

// NewRepresentation returns a new visible representation with a neutral pose.
func NewRepresentation(name string) *Representation {
	r := &Representation{Name: name, Visible: true}
	r.Pose.Defaults()
	return r
}

// Parent returns the representation this one is attached to, or nil.
func (r *Representation) Parent() *Representation {
	return r.parent
}

// Children returns the attached child representations.
func (r *Representation) Children() []*Representation {
	return r.children
}

// Add attaches the given representation as a child. A representation
// attached elsewhere is moved.
func (r *Representation) Add(kid *Representation) {
	if kid.parent == r {
		return
	}
	if kid.parent != nil {
		kid.parent.remove(kid)
	}
	kid.parent = r
	r.children = append(r.children, kid)
}

// Detach removes the representation from its parent, if any.
func (r *Representation) Detach() {
	if r.parent != nil {
		r.parent.remove(r)
	}
}

// Root returns the topmost ancestor of the representation,
// or the representation itself if it has no parent.
func (r *Representation) Root() *Representation {
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// IsUnder returns whether the representation is the given one
// or one of its descendants.
func (r *Representation) IsUnder(anc *Representation) bool {
	for ; r != nil; r = r.parent {
		if r == anc {
			return true
		}
	}
	return false
}

func (r *Representation) remove(kid *Representation) {
	for i, k := range r.children {
		if k == kid {
			r.children = append(r.children[:i], r.children[i+1:]...)
			kid.parent = nil
			return
		}
	}
}

// SetPose sets the position, Euler rotation in degrees with its
// axis order, and scale of the representation.
func (r *Representation) SetPose(pos, rot [3]float64, order string, scale [3]float64) {
	r.Pose.Pos.Set(float32(pos[0]), float32(pos[1]), float32(pos[2]))
	r.Pose.SetEulerRotation(float32(rot[0]), float32(rot[1]), float32(rot[2]), order)
	r.Pose.Scale.Set(float32(scale[0]), float32(scale[1]), float32(scale[2]))
}

// UpdateWorldMatrices updates the world matrices of the representation
// and all of its descendants, relative to the current world matrix
// of its parent.
func (r *Representation) UpdateWorldMatrices() {
	r.updateWorld(r.parent)
}

func (r *Representation) updateWorld(parent *Representation) {
	if parent == nil {
		r.Pose.UpdateWorldMatrix(nil)
	} else {
		r.Pose.UpdateWorldMatrix(&parent.Pose.WorldMatrix)
	}
	for _, kid := range r.children {
		kid.updateWorld(r)
	}
}

// WalkVisible calls the given function on the representation and all of its
// visible descendants in depth-first order. Invisible representations and
// their subtrees are skipped.
func (r *Representation) WalkVisible(fun func(r *Representation)) {
	if !r.Visible {
		return
	}
	fun(r)
	for _, kid := range r.children {
		kid.WalkVisible(fun)
	}
}
