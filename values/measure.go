// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/jinzhu/copier"

	"coeditar.org/core/base/errors"
)

// MeasurementUnit is a unit of a [Measure].
type MeasurementUnit struct {

	// ID is the name of the unit, such as "centimeter".
	ID string

	// Abbreviations are the symbols of the unit, such as "cm".
	// The first one is used for formatting.
	Abbreviations []string

	// Factor is the number of base units in one unit.
	Factor float64

	// Default, Min and Max are optional constraints given in this unit,
	// which are applied to the measure when the unit is selected.
	Default, Min, Max *float64
}

// Symbol returns the first abbreviation of the unit, or its ID.
func (u *MeasurementUnit) Symbol() string {
	if len(u.Abbreviations) > 0 {
		return u.Abbreviations[0]
	}
	return u.ID
}

// Matches returns whether the given name is the ID or one of the
// abbreviations of the unit. IDs are matched case-insensitively.
func (u *MeasurementUnit) Matches(name string) bool {
	if strings.EqualFold(u.ID, name) {
		return true
	}
	for _, a := range u.Abbreviations {
		if a == name {
			return true
		}
	}
	return false
}

// Measure is a [Number] with a list of measurement units. The value is always
// stored in the base unit, which has a factor of 1; the selected unit is
// only used for display values, formatting and parsing.
type Measure struct {
	Number

	units []MeasurementUnit
	unit  int
}

// SetUnits sets a copy of the given units, and selects the unit
// with the given ID or abbreviation.
func (m *Measure) SetUnits(units []MeasurementUnit, selected string) error {
	var cp []MeasurementUnit
	if err := copier.CopyWithOption(&cp, &units, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("values: %q: copy units: %w", m.Name, err)
	}
	m.units = cp
	m.unit = 0
	return m.SetUnit(selected)
}

// Units returns the units of the measure.
func (m *Measure) Units() []MeasurementUnit {
	return m.units
}

// UnitByName returns the index of the unit with the given ID or
// abbreviation, or -1.
func (m *Measure) UnitByName(name string) int {
	for i := range m.units {
		if m.units[i].Matches(name) {
			return i
		}
	}
	return -1
}

// Unit returns the selected unit. It panics if the measure has no units.
func (m *Measure) Unit() *MeasurementUnit {
	return &m.units[m.unit]
}

// SetUnit selects the unit with the given ID or abbreviation and applies
// its constraints. The value is unchanged, since it is stored in the base unit.
func (m *Measure) SetUnit(name string) error {
	idx := m.UnitByName(name)
	if idx < 0 {
		return fmt.Errorf("values: %q: unknown unit %q", m.Name, name)
	}
	u := &m.units[idx]
	if u.Min != nil || u.Max != nil {
		lo, hi := math.NaN(), math.NaN()
		if u.Min != nil {
			lo = *u.Min * u.Factor
		}
		if u.Max != nil {
			hi = *u.Max * u.Factor
		}
		if err := m.SetRange(lo, hi); err != nil {
			return err
		}
	}
	if u.Default != nil {
		if err := m.SetDefault(*u.Default * u.Factor); err != nil {
			return err
		}
	}
	m.unit = idx
	return nil
}

// DisplayValue returns the value in the selected unit.
func (m *Measure) DisplayValue() float64 {
	return m.Value() / m.Unit().Factor
}

// SetDisplayValue sets the value given in the selected unit.
func (m *Measure) SetDisplayValue(v float64) error {
	return m.SetValue(v * m.Unit().Factor)
}

// Format returns the value in the selected unit followed by its symbol.
func (m *Measure) Format() string {
	return strconv.FormatFloat(m.DisplayValue(), 'f', -1, 64) + " " + m.Unit().Symbol()
}

// ParseValue parses a number optionally followed by a unit, such as
// "12cm" or "1.5 km", and returns the value in the base unit. A number
// without unit is in the selected unit.
func (m *Measure) ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && !strings.ContainsRune("+-.eE", r)
	})
	num, unit := s, ""
	if end >= 0 {
		num, unit = s[:end], strings.TrimSpace(s[end:])
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("values: %q: parse %q: %w", m.Name, s, err)
	}
	u := m.Unit()
	if unit != "" {
		idx := m.UnitByName(unit)
		if idx < 0 {
			return 0, fmt.Errorf("values: %q: unknown unit %q", m.Name, unit)
		}
		u = &m.units[idx]
	}
	return f * u.Factor, nil
}

// Parse sets the value from a string accepted by [Measure.ParseValue].
func (m *Measure) Parse(s string) error {
	v, err := m.ParseValue(s)
	if err != nil {
		return err
	}
	return m.SetValue(v)
}

// ConvertValue accepts numbers in the base unit and strings
// accepted by [Measure.ParseValue].
func (m *Measure) ConvertValue(data any) (float64, error) {
	if s, ok := data.(string); ok {
		return m.ParseValue(s)
	}
	return m.Number.ConvertValue(data)
}

// Text returns the formatted value.
func (m *Measure) Text() string {
	if m.IsUndefined() {
		return ""
	}
	return m.Format()
}

// DistanceUnits are the units of a [Distance], in meters.
var DistanceUnits = []MeasurementUnit{
	{ID: "meter", Abbreviations: []string{"m"}, Factor: 1},
	{ID: "kilometer", Abbreviations: []string{"km"}, Factor: 1000},
	{ID: "centimeter", Abbreviations: []string{"cm"}, Factor: 0.01},
	{ID: "millimeter", Abbreviations: []string{"mm"}, Factor: 0.001},
	{ID: "inch", Abbreviations: []string{"in", "\""}, Factor: 0.0254},
	{ID: "foot", Abbreviations: []string{"ft", "'"}, Factor: 0.3048},
	{ID: "yard", Abbreviations: []string{"yd"}, Factor: 0.9144},
}

// Distance is a [Measure] of length stored in meters.
type Distance struct {
	Measure
}

func (d *Distance) Init() {
	errors.Log(d.SetUnits(DistanceUnits, "m"))
}

// AngleUnits are the units of an [Angle], in degrees.
var AngleUnits = []MeasurementUnit{
	{ID: "degree", Abbreviations: []string{"deg", "°"}, Factor: 1},
	{ID: "radian", Abbreviations: []string{"rad"}, Factor: 180 / math.Pi},
	{ID: "turn", Abbreviations: []string{"tr"}, Factor: 360},
}

// Angle is a [Measure] of angle stored in degrees.
type Angle struct {
	Measure
}

func (a *Angle) Init() {
	errors.Log(a.SetUnits(AngleUnits, "deg"))
}

// Radians returns the value in radians.
func (a *Angle) Radians() float64 {
	return a.Value() * math.Pi / 180
}
