// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func assertVector3(t *testing.T, want, got Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "X")
	assert.InDelta(t, want.Y, got.Y, tol, "Y")
	assert.InDelta(t, want.Z, got.Z, tol, "Z")
}

func TestVector3(t *testing.T) {
	v := Vec3(3, 4, 0)
	assert.Equal(t, float32(5), v.Length())
	assertVector3(t, Vec3(0.6, 0.8, 0), v.Normal())
	assert.Equal(t, Vector3{}, Vector3{}.Normal())
	assert.Equal(t, Vec3(4, 5, 1), v.Add(Vector3Scalar(1)))
	assert.Equal(t, Vec3(2, 3, -1), v.Sub(Vector3Scalar(1)))
	assert.Equal(t, float32(11), v.Dot(Vec3(1, 2, 3)))
	assert.Equal(t, Vec3(1, 2, 3), Vector3FromArray([3]float64{1, 2, 3}))
	assert.Equal(t, "(3, 4, 0)", v.String())
}

func TestQuatEuler(t *testing.T) {
	q := NewQuatEuler(Vec3(0, Pi/2, 0), "XYZ")
	assertVector3(t, Vec3(0, 0, -1), Vec3(1, 0, 0).MulQuat(q))
	assert.InDelta(t, 1, q.Length(), tol)

	q = NewQuatEuler(Vec3(0, 0, Pi/2), "ZYX")
	assertVector3(t, Vec3(0, 1, 0), Vec3(1, 0, 0).MulQuat(q))

	// rotating about a single axis does not depend on the order
	for _, order := range []string{"XYZ", "YXZ", "ZXY", "ZYX", "YZX", "XZY"} {
		q := NewQuatEuler(Vec3(Pi/2, 0, 0), order)
		assertVector3(t, Vec3(0, 0, 1), Vec3(0, 1, 0).MulQuat(q))
	}

	id := QuatIdentity()
	assert.Equal(t, q, q.Mul(id))
	assert.Equal(t, id, Quat{}.Normal())
	half := NewQuatEuler(Vec3(0, Pi/4, 0), "XYZ")
	full := half.Mul(half)
	assertVector3(t, Vec3(0, 0, -1), Vec3(1, 0, 0).MulQuat(full))
}

func TestMatrix4Transform(t *testing.T) {
	m := &Matrix4{}
	q := NewQuatEuler(Vec3(0, Pi/2, 0), "XYZ")
	m.SetTransform(Vec3(1, 2, 3), q, Vec3(2, 2, 2))
	assertVector3(t, Vec3(1, 2, 1), Vec3(1, 0, 0).MulMatrix4AsPoint(m))
	assert.Equal(t, Vec3(1, 2, 3), m.Position())

	inv := m.InverseTransform()
	id := m.Mul(inv)
	want := Identity4()
	for i := range id {
		assert.InDelta(t, want[i], id[i], tol, "element %d", i)
	}
	assertVector3(t, Vec3(1, 0, 0), Vec3(1, 2, 1).MulMatrix4AsPoint(inv))

	parent := &Matrix4{}
	parent.SetTransform(Vec3(10, 0, 0), QuatIdentity(), Vector3Scalar(1))
	world := parent.Mul(m)
	assertVector3(t, Vec3(11, 2, 1), Vec3(1, 0, 0).MulMatrix4AsPoint(world))
}

func TestPerspective(t *testing.T) {
	m := &Matrix4{}
	m.SetPerspective(90, 2, 1, 10)
	assert.InDelta(t, 0.5, m[0], tol)
	assert.InDelta(t, 1, m[5], tol)
	assert.Equal(t, float32(-1), m[11])
	// a point on the near plane maps to depth -1
	p := Vec3(0, 0, -1)
	clipZ := m[10]*p.Z + m[14]
	clipW := m[11] * p.Z
	assert.InDelta(t, -1, clipZ/clipW, tol)
	assert.Equal(t, 3, Clamp(5, 1, 3))
	assert.InDelta(t, Pi, DegToRad(180), tol)
	assert.InDelta(t, 180, RadToDeg(Pi), 1e-3)
}
