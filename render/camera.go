// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import "coeditar.org/core/math32"

// Camera is the viewer of a scene: a representation with lens parameters.
type Camera struct {
	Representation

	// FieldOfView is the vertical field of view in degrees.
	FieldOfView float32

	// Aspect is the aspect ratio of the view (width / height).
	Aspect float32

	// Near is the distance of the near clipping plane.
	Near float32

	// Far is the distance of the far clipping plane.
	Far float32
}

// NewCamera returns a new camera with default lens parameters.
func NewCamera(name string) *Camera {
	c := &Camera{}
	c.Name = name
	c.Visible = true
	c.Defaults()
	return c
}

// Defaults sets the default pose and lens parameters.
func (c *Camera) Defaults() {
	c.Pose.Defaults()
	c.FieldOfView = 60
	c.Aspect = 1
	c.Near = 0.01
	c.Far = 1000
}

// SetLens sets the lens parameters, ignoring values that are not positive.
func (c *Camera) SetLens(fov, near, far float32) {
	if fov > 0 {
		c.FieldOfView = fov
	}
	if near > 0 {
		c.Near = near
	}
	if far > 0 {
		c.Far = far
	}
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() *math32.Matrix4 {
	m := &math32.Matrix4{}
	m.SetPerspective(c.FieldOfView, c.Aspect, c.Near, c.Far)
	return m
}

// ViewMatrix returns the inverse of the world matrix of the camera,
// which transforms world coordinates into camera coordinates.
func (c *Camera) ViewMatrix() *math32.Matrix4 {
	return c.Pose.WorldMatrix.InverseTransform()
}

// ViewProjectionMatrix returns the projection matrix times the view matrix.
func (c *Camera) ViewProjectionMatrix() *math32.Matrix4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
