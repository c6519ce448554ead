// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package values_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coeditar.org/core/tree"
	. "coeditar.org/core/values"
)

type holder struct {
	tree.Item
	Num  *Number
	Str  *String
	Flag *Boolean
	Ver  *Version
	Pos  *Vector
	Rot  *Euler
	Tint *Color
	Len  *Distance
	Turn *Angle
}

func (h *holder) Init() {
	h.Num = tree.New[*Number](h.Children(), "num")
	h.Str = tree.New[*String](h.Children(), "str")
	h.Flag = tree.New[*Boolean](h.Children(), "flag")
	h.Ver = tree.New[*Version](h.Children(), "ver")
	h.Pos = tree.New[*Vector](h.Children(), "pos")
	h.Rot = tree.New[*Euler](h.Children(), "rot")
	h.Tint = tree.New[*Color](h.Children(), "tint")
	h.Len = tree.New[*Distance](h.Children(), "len")
	h.Turn = tree.New[*Angle](h.Children(), "turn")
}

func newHolder(t *testing.T) *holder {
	t.Helper()
	return tree.NewRoot[*holder](tree.NewContext(), "h")
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func countModifications(n tree.Node) *int {
	count := new(int)
	n.AsItem().OnModification.Listen(func(target, data any) bool {
		*count++
		return false
	})
	return count
}

func TestSimpleDefault(t *testing.T) {
	h := newHolder(t)
	n := h.Num
	assert.True(t, n.IsUndefined())
	_, ok := n.ValueTry()
	assert.False(t, ok)
	assert.Equal(t, 0.0, n.Value())
	assert.Nil(t, n.Serialize(tree.ModeFull))

	require.NoError(t, n.SetDefault(5))
	assert.False(t, n.IsUndefined())
	assert.True(t, n.IsDefault())
	assert.Equal(t, 5.0, n.Value())
	assert.Equal(t, 5.0, n.Serialize(tree.ModeFull))
	assert.Nil(t, n.Serialize(tree.ModeSimple))

	require.NoError(t, n.SetValue(7))
	assert.True(t, n.HasValue())
	assert.False(t, n.IsDefault())
	assert.Equal(t, 7.0, n.Serialize(tree.ModeSimple))

	n.Clear()
	assert.False(t, n.HasValue())
	assert.Equal(t, 5.0, n.Value())
}

func TestSetValueIdempotent(t *testing.T) {
	h := newHolder(t)
	h.Update(0, false, nil)
	root := countModifications(h)
	leaf := countModifications(h.Num)

	require.NoError(t, h.Num.SetValue(3))
	assert.Equal(t, 1, *root)
	assert.Equal(t, 1, *leaf)
	assert.False(t, h.Updated())

	h.Update(0, false, nil)
	require.NoError(t, h.Num.SetValue(3))
	assert.Equal(t, 1, *root)
	assert.Equal(t, 1, *leaf)
	assert.True(t, h.Updated())
}

func TestNumberRange(t *testing.T) {
	h := newHolder(t)
	n := h.Num
	require.NoError(t, n.SetRange(0, 10))
	require.NoError(t, n.SetValue(4))
	count := countModifications(n)

	err := n.SetValue(11)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "num", verr.Name)
	assert.Equal(t, 11.0, verr.Value)
	assert.Equal(t, 4.0, n.Value())
	assert.Equal(t, 0, *count)

	assert.Error(t, n.SetValue(math.NaN()))
	assert.Error(t, n.SetDefault(-1))
	assert.Error(t, n.SetRange(5, 10), "current value is out of the new range")
	assert.Error(t, n.SetRange(3, 1))
	require.NoError(t, n.SetRange(math.NaN(), 4))
	lo, hasLo, hi, hasHi := n.Range()
	assert.False(t, hasLo)
	assert.Equal(t, 0.0, lo)
	assert.True(t, hasHi)
	assert.Equal(t, 4.0, hi)
	assert.NoError(t, n.SetValue(-100))
}

func TestValidSet(t *testing.T) {
	h := newHolder(t)
	s := h.Str
	require.NoError(t, s.SetValid("a", "b"))
	require.NoError(t, s.SetValue("a"))
	assert.ErrorIs(t, s.SetValue("c"), ErrInvalidValue)
	assert.Equal(t, "a", s.Value())
	assert.ErrorIs(t, s.SetValid("x", "y"), ErrInvalidValue)
	assert.Equal(t, []string{"a", "b"}, s.Valid())
	require.NoError(t, s.SetValid())
	assert.NoError(t, s.SetValue("c"))
}

func TestStringPattern(t *testing.T) {
	h := newHolder(t)
	s := h.Str
	require.NoError(t, s.SetPattern(`^[a-z]+$`))
	assert.NoError(t, s.SetValue("abc"))
	assert.ErrorIs(t, s.SetValue("ABC"), ErrInvalidValue)
	assert.Equal(t, "abc", s.Value())
	assert.Error(t, s.SetPattern(`^\d+$`), "current value does not match")
	assert.Error(t, s.SetPattern(`(`))
	require.NoError(t, s.SetPattern(""))
	assert.Nil(t, s.Pattern())
}

func TestVersion(t *testing.T) {
	h := newHolder(t)
	v := h.Ver
	assert.Nil(t, v.Semver())
	require.NoError(t, v.SetValue("1.2.3"))
	assert.ErrorIs(t, v.SetValue("not a version"), ErrInvalidValue)
	assert.Equal(t, "1.2.3", v.Value())
	ok, err := v.Satisfies("^1.0")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = v.Satisfies(">= 2")
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = v.Satisfies("nope nope")
	assert.Error(t, err)
	assert.Equal(t, uint64(2), v.Semver().Minor())
}

func TestConvert(t *testing.T) {
	h := newHolder(t)
	require.NoError(t, h.Deserialize(map[string]any{
		"num":  int64(3),
		"str":  42,
		"flag": "true",
		"ver":  "0.1.0",
	}, tree.ModeFull))
	assert.Equal(t, 3.0, h.Num.Value())
	assert.Equal(t, "42", h.Str.Value())
	assert.True(t, h.Flag.Value())
	assert.Equal(t, "0.1.0", h.Ver.Value())

	assert.ErrorIs(t, h.Num.Deserialize("abc", tree.ModeFull), ErrConvert)
	assert.ErrorIs(t, h.Flag.Deserialize(2, tree.ModeFull), ErrConvert)
	assert.NoError(t, h.Num.Deserialize(nil, tree.ModeFull))
	require.NoError(t, h.Flag.Toggle())
	assert.False(t, h.Flag.Value())
}

func TestVector(t *testing.T) {
	h := newHolder(t)
	v := h.Pos
	assert.Equal(t, []float64{0, 0, 0}, v.ToArray())
	assert.True(t, v.IsDefault())
	assert.False(t, v.IsUndefined())
	assert.Nil(t, v.Serialize(tree.ModeSimple))
	assert.Equal(t, `{"x":0,"y":0,"z":0}`, toJSON(t, v.Serialize(tree.ModeFull)))

	require.NoError(t, v.Set(1, 2, 3))
	assert.Equal(t, [3]float64{1, 2, 3}, v.Array3())
	assert.False(t, v.IsDefault())
	assert.Same(t, v.Y, v.Component("y"))
	assert.Nil(t, v.Component("w"))
	assert.Len(t, v.Components(), 3)

	// trailing components are cleared back to their defaults
	require.NoError(t, v.FromArray(4))
	assert.Equal(t, []float64{4, 0, 0}, v.ToArray())
	assert.False(t, v.Y.HasValue())
	assert.Equal(t, `{"x":4}`, toJSON(t, v.Serialize(tree.ModeSimple)))
}

func TestVectorDeserialize(t *testing.T) {
	h := newHolder(t)
	h.Update(0, false, nil)
	count := countModifications(h)
	require.NoError(t, h.Deserialize(`{"pos": {"x": 2, "y": 0, "z": 0}}`, tree.ModeFull))
	assert.Equal(t, 2.0, h.Pos.X.Value())
	assert.Equal(t, 1, *count, "only x changed")
	assert.False(t, h.Updated())

	require.NoError(t, h.Pos.Deserialize("[5, 6]", tree.ModeFull))
	assert.Equal(t, []float64{5, 6, 0}, h.Pos.ToArray())
	require.NoError(t, h.Pos.Deserialize([]float64{7}, tree.ModeFull))
	assert.Equal(t, []float64{7, 0, 0}, h.Pos.ToArray())
}

func TestColor(t *testing.T) {
	h := newHolder(t)
	c := h.Tint
	assert.Equal(t, "#ffffff", c.Hex())
	require.NoError(t, c.Set(0.5, 0, 0, 1))
	count := countModifications(c)

	err := c.FromArray(0.2, 2)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, []float64{0.5, 0, 0, 1}, c.ToArray(), "nothing changes on error")
	assert.Equal(t, 0, *count)

	require.NoError(t, h.Deserialize(map[string]any{"tint": "#ff0000"}, tree.ModeFull))
	assert.Equal(t, []float64{1, 0, 0, 1}, c.ToArray())
	assert.Equal(t, "#ff0000", c.Hex())
	require.NoError(t, c.SetHex("#0f08"))
	assert.Equal(t, "#00ff0088", c.Hex())
	assert.Error(t, c.SetHex("#12345"))
	assert.Error(t, c.SetHex("#gggggg"))
}

func TestEuler(t *testing.T) {
	h := newHolder(t)
	e := h.Rot
	assert.Equal(t, "XYZ", e.Order.Value())
	assert.Equal(t, `{"x":0,"y":0,"z":0,"order":"XYZ"}`, toJSON(t, e.Serialize(tree.ModeFull)))
	assert.ErrorIs(t, e.Order.SetValue("XXX"), ErrInvalidValue)
	require.NoError(t, e.Set(180, 0, 90))
	r := e.Radians()
	assert.InDelta(t, math.Pi, r[0], 1e-12)
	assert.InDelta(t, math.Pi/2, r[2], 1e-12)
	require.NoError(t, e.Deserialize(map[string]any{"order": "ZYX"}, tree.ModeFull))
	assert.Equal(t, "ZYX", e.Order.Value())
}

func TestEulerOrderIsPartOfValue(t *testing.T) {
	h := newHolder(t)
	e := h.Rot
	assert.True(t, e.IsDefault())
	assert.False(t, e.IsUndefined())
	require.NoError(t, e.Order.SetValue("ZYX"))
	assert.False(t, e.IsDefault(), "a non default order is not the default rotation")
	e.Order.Clear()
	assert.True(t, e.IsDefault())
}

// evenNumber is a number that only accepts even values.
type evenNumber struct {
	Number
}

func (n *evenNumber) CheckValue(v float64) error {
	if math.Mod(v, 2) != 0 {
		return &ValidationError{Name: n.Name, Value: v, Reason: "odd"}
	}
	return n.Number.CheckValue(v)
}

func TestComplexEmbeddedComponentCheck(t *testing.T) {
	h := newHolder(t)
	v := h.Pos
	w := tree.New[*evenNumber](v.Children(), "w")
	v.AddComponent(&w.Number)
	require.Len(t, v.Components(), 4)

	require.NoError(t, v.FromArray(1, 2, 3, 4))
	assert.Equal(t, []float64{1, 2, 3, 4}, v.ToArray())
	err := v.FromArray(5, 6, 7, 9)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.ErrorContains(t, err, "odd")
	assert.Equal(t, []float64{1, 2, 3, 4}, v.ToArray(), "nothing changes on error")
}

func TestMeasure(t *testing.T) {
	h := newHolder(t)
	d := h.Len
	assert.Equal(t, "meter", d.Unit().ID)
	assert.Equal(t, "", d.Text())

	require.NoError(t, d.Parse("12cm"))
	assert.InDelta(t, 0.12, d.Value(), 1e-12)
	require.NoError(t, d.Parse("1.5 km"))
	assert.Equal(t, 1500.0, d.Value())
	require.NoError(t, d.Parse("3"))
	assert.Equal(t, 3.0, d.Value())
	assert.Error(t, d.Parse("3 parsecs"))
	assert.Error(t, d.Parse("far"))

	require.NoError(t, d.SetUnit("km"))
	assert.Equal(t, "kilometer", d.Unit().ID)
	assert.Equal(t, 3.0, d.Value(), "the value is stored in meters")
	require.NoError(t, d.SetDisplayValue(2))
	assert.Equal(t, 2000.0, d.Value())
	assert.Equal(t, 2.0, d.DisplayValue())
	assert.Equal(t, "2 km", d.Format())
	assert.Equal(t, 2000.0, d.Serialize(tree.ModeFull))
	assert.Error(t, d.SetUnit("lightyear"))

	require.NoError(t, h.Deserialize(map[string]any{"len": "20 ft"}, tree.ModeFull))
	assert.InDelta(t, 6.096, d.Value(), 1e-12)

	d.Units()[0].Abbreviations[0] = "changed"
	assert.Equal(t, "m", DistanceUnits[0].Abbreviations[0], "units are copied")
}

func TestMeasureUnitConstraints(t *testing.T) {
	h := newHolder(t)
	lo, hi, def := 0.0, 100.0, 50.0
	units := []MeasurementUnit{
		{ID: "meter", Abbreviations: []string{"m"}, Factor: 1},
		{ID: "centimeter", Abbreviations: []string{"cm"}, Factor: 0.01, Min: &lo, Max: &hi, Default: &def},
	}
	d := h.Len
	require.NoError(t, d.SetUnits(units, "cm"))
	assert.Equal(t, 0.5, d.Value())
	assert.ErrorIs(t, d.SetValue(2), ErrInvalidValue)
	assert.NoError(t, d.SetValue(1))
}

func TestAngle(t *testing.T) {
	h := newHolder(t)
	a := h.Turn
	require.NoError(t, a.Parse("0.5 turn"))
	assert.Equal(t, 180.0, a.Value())
	assert.InDelta(t, math.Pi, a.Radians(), 1e-12)
	require.NoError(t, a.Parse("1rad"))
	assert.InDelta(t, 180/math.Pi, a.Value(), 1e-12)
}

func TestRoundTrip(t *testing.T) {
	h := newHolder(t)
	require.NoError(t, h.Num.SetValue(1.5))
	require.NoError(t, h.Str.SetValue("hello"))
	require.NoError(t, h.Ver.SetValue("2.0.0"))
	require.NoError(t, h.Pos.Set(1, 2, 3))
	require.NoError(t, h.Tint.SetHex("#336699"))
	require.NoError(t, h.Len.SetValue(4))

	for _, mode := range []tree.Mode{tree.ModeFull, tree.ModeSimple} {
		h2 := newHolder(t)
		data := toJSON(t, h.Serialize(mode))
		require.NoError(t, h2.Deserialize(data, mode))
		h2.Name = h.Name
		assert.Equal(t, toJSON(t, h.Serialize(tree.ModeFull)), toJSON(t, h2.Serialize(tree.ModeFull)), mode.String())
	}
}
