// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"coeditar.org/core/base/errors"
	"coeditar.org/core/tree"
)

// Vector is a three-dimensional vector with x, y and z components,
// which default to 0.
type Vector struct {
	Complex
	X, Y, Z *Number `json:"-"`
}

func (v *Vector) Init() {
	cs := v.AddComponents("x", "y", "z")
	v.X, v.Y, v.Z = cs[0], cs[1], cs[2]
	errors.Log(v.SetDefaults(0, 0, 0))
}

// Set sets all components.
func (v *Vector) Set(x, y, z float64) error {
	return v.FromArray(x, y, z)
}

// Array3 returns the components as an array.
func (v *Vector) Array3() [3]float64 {
	return [3]float64{v.X.Value(), v.Y.Value(), v.Z.Value()}
}

// EulerOrders are the valid rotation orders of an [Euler].
var EulerOrders = []string{"XYZ", "YXZ", "ZXY", "ZYX", "YZX", "XZY"}

// Euler is a rotation given by x, y and z angles in degrees,
// applied in the axis order given by its order component.
type Euler struct {
	Complex
	X, Y, Z *Number `json:"-"`
	Order   *String `json:"-"`
}

func (e *Euler) Init() {
	cs := e.AddComponents("x", "y", "z")
	e.X, e.Y, e.Z = cs[0], cs[1], cs[2]
	errors.Log(e.SetDefaults(0, 0, 0))
	e.Order = tree.New[*String](e.Children(), "order")
	errors.Log(e.Order.SetValid(EulerOrders...))
	errors.Log(e.Order.SetDefault("XYZ"))
}

// Set sets the angles in degrees.
func (e *Euler) Set(x, y, z float64) error {
	return e.FromArray(x, y, z)
}

// Array3 returns the angles in degrees as an array.
func (e *Euler) Array3() [3]float64 {
	return [3]float64{e.X.Value(), e.Y.Value(), e.Z.Value()}
}

// IsDefault returns whether the angles and the order have their defaults.
func (e *Euler) IsDefault() bool {
	return e.Complex.IsDefault() && e.Order.IsDefault()
}

// IsUndefined returns whether the angles and the order are all undefined.
func (e *Euler) IsUndefined() bool {
	return e.Complex.IsUndefined() && e.Order.IsUndefined()
}

// Radians returns the angles in radians.
func (e *Euler) Radians() [3]float64 {
	const d2r = math.Pi / 180
	return [3]float64{e.X.Value() * d2r, e.Y.Value() * d2r, e.Z.Value() * d2r}
}

// Quaternion is a rotation given by x, y, z and w components,
// which default to the identity rotation.
type Quaternion struct {
	Complex
	X, Y, Z, W *Number `json:"-"`
}

func (q *Quaternion) Init() {
	cs := q.AddComponents("x", "y", "z", "w")
	q.X, q.Y, q.Z, q.W = cs[0], cs[1], cs[2], cs[3]
	errors.Log(q.SetDefaults(0, 0, 0, 1))
}

// Set sets all components.
func (q *Quaternion) Set(x, y, z, w float64) error {
	return q.FromArray(x, y, z, w)
}

// Color is a color with r, g, b and a components in the range [0, 1],
// which default to opaque white.
type Color struct {
	Complex
	R, G, B, A *Number `json:"-"`
}

func (c *Color) Init() {
	cs := c.AddComponents("r", "g", "b", "a")
	c.R, c.G, c.B, c.A = cs[0], cs[1], cs[2], cs[3]
	errors.Log(c.SetRanges(0, 1))
	errors.Log(c.SetDefaults(1, 1, 1, 1))
}

// Set sets all components.
func (c *Color) Set(r, g, b, a float64) error {
	return c.FromArray(r, g, b, a)
}

// Hex returns the color in the #rrggbbaa format,
// or #rrggbb if it is opaque.
func (c *Color) Hex() string {
	b := func(n *Number) uint8 { return uint8(math.Round(n.Value() * 255)) }
	if c.A.Value() == 1 {
		return fmt.Sprintf("#%02x%02x%02x", b(c.R), b(c.G), b(c.B))
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", b(c.R), b(c.G), b(c.B), b(c.A))
}

// SetHex sets the color from the #rgb, #rgba, #rrggbb or #rrggbbaa format.
func (c *Color) SetHex(hex string) error {
	h := strings.TrimPrefix(hex, "#")
	if len(h) == 3 || len(h) == 4 {
		var sb strings.Builder
		for _, r := range h {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		h = sb.String()
	}
	if len(h) != 6 && len(h) != 8 {
		return fmt.Errorf("values: %q: invalid hex color %q", c.Name, hex)
	}
	vals := make([]float64, 0, 4)
	for i := 0; i < len(h); i += 2 {
		u, err := strconv.ParseUint(h[i:i+2], 16, 8)
		if err != nil {
			return fmt.Errorf("values: %q: invalid hex color %q: %w", c.Name, hex, err)
		}
		vals = append(vals, float64(u)/255)
	}
	if len(vals) == 3 {
		vals = append(vals, 1)
	}
	return c.FromArray(vals...)
}

// Deserialize accepts hex strings in addition to the data accepted
// by [Complex.Deserialize].
func (c *Color) Deserialize(data any, mode tree.Mode) error {
	if s, ok := data.(string); ok && strings.HasPrefix(strings.TrimSpace(s), "#") {
		return c.SetHex(strings.TrimSpace(s))
	}
	return c.Complex.Deserialize(data, mode)
}
