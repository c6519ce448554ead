// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import "coeditar.org/core/math32"

// Pose contains the full description of position and orientation
// of a representation, relative to its parent.
type Pose struct {

	// Pos is the position of center of the representation.
	Pos math32.Vector3

	// Scale is the scale factor along the local axes.
	Scale math32.Vector3

	// Quat is the rotation of the representation.
	Quat math32.Quat

	// Matrix is the local transformation matrix, updated by [Pose.UpdateMatrix].
	Matrix math32.Matrix4

	// WorldMatrix is the transformation relative to the scene root,
	// updated by [Pose.UpdateWorldMatrix].
	WorldMatrix math32.Matrix4
}

// Defaults sets a neutral pose: origin, unit scale and no rotation.
func (ps *Pose) Defaults() {
	ps.Pos = math32.Vector3{}
	ps.Scale = math32.Vector3Scalar(1)
	ps.Quat = math32.QuatIdentity()
	ps.Matrix.SetIdentity()
	ps.WorldMatrix.SetIdentity()
}

// SetEulerRotation sets the rotation from the given Euler
// angles in degrees, applied in the given axis order.
func (ps *Pose) SetEulerRotation(x, y, z float32, order string) {
	ps.Quat.SetFromEuler(math32.Vec3(math32.DegToRad(x), math32.DegToRad(y), math32.DegToRad(z)), order)
}

// UpdateMatrix updates the local transformation matrix.
func (ps *Pose) UpdateMatrix() {
	ps.Matrix.SetTransform(ps.Pos, ps.Quat, ps.Scale)
}

// UpdateWorldMatrix updates the world transformation matrix from the
// world matrix of the parent, which is nil for the scene root.
func (ps *Pose) UpdateWorldMatrix(parent *math32.Matrix4) {
	ps.UpdateMatrix()
	if parent == nil {
		ps.WorldMatrix = ps.Matrix
		return
	}
	ps.WorldMatrix = *parent.Mul(&ps.Matrix)
}

// WorldPos returns the position in world coordinates, as of the
// last [Pose.UpdateWorldMatrix].
func (ps *Pose) WorldPos() math32.Vector3 {
	return ps.WorldMatrix.Position()
}
