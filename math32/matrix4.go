// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Matrix4 is 4x4 matrix organized internally as column matrix.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() *Matrix4 {
	m := &Matrix4{}
	m.SetIdentity()
	return m
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	*m = Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// SetTransform sets this matrix to a transformation matrix for the
// specified position, rotation and scale.
func (m *Matrix4) SetTransform(pos Vector3, quat Quat, scale Vector3) {
	x, y, z, w := quat.X, quat.Y, quat.Z, quat.W
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	m[0] = (1 - (yy + zz)) * scale.X
	m[1] = (xy + wz) * scale.X
	m[2] = (xz - wy) * scale.X
	m[3] = 0
	m[4] = (xy - wz) * scale.Y
	m[5] = (1 - (xx + zz)) * scale.Y
	m[6] = (yz + wx) * scale.Y
	m[7] = 0
	m[8] = (xz + wy) * scale.Z
	m[9] = (yz - wx) * scale.Z
	m[10] = (1 - (xx + yy)) * scale.Z
	m[11] = 0
	m[12] = pos.X
	m[13] = pos.Y
	m[14] = pos.Z
	m[15] = 1
}

// Mul returns this matrix times the other matrix, which
// applies the other transformation first.
func (m *Matrix4) Mul(other *Matrix4) *Matrix4 {
	r := &Matrix4{}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// Position returns the translation part of the matrix.
func (m *Matrix4) Position() Vector3 {
	return Vector3{m[12], m[13], m[14]}
}

// InverseTransform returns the inverse of this matrix, which must be a
// transformation matrix as set by [Matrix4.SetTransform]. Axes with a
// zero scale stay zero.
func (m *Matrix4) InverseTransform() *Matrix4 {
	r := &Matrix4{}
	for i := 0; i < 3; i++ {
		l2 := m[i*4]*m[i*4] + m[i*4+1]*m[i*4+1] + m[i*4+2]*m[i*4+2]
		if l2 == 0 {
			continue
		}
		for j := 0; j < 3; j++ {
			r[j*4+i] = m[i*4+j] / l2
		}
	}
	for i := 0; i < 3; i++ {
		r[12+i] = -(r[i]*m[12] + r[4+i]*m[13] + r[8+i]*m[14])
	}
	r[15] = 1
	return r
}

// SetPerspective sets this matrix to a perspective projection matrix
// with the specified vertical field of view in degrees, aspect ratio
// (width / height) and near and far clipping planes.
func (m *Matrix4) SetPerspective(fov, aspect, near, far float32) {
	f := 1 / Tan(DegToRad(fov)/2)
	*m = Matrix4{}
	m[0] = f / aspect
	m[5] = f
	m[10] = -(far + near) / (far - near)
	m[11] = -1
	m[14] = -2 * far * near / (far - near)
}
