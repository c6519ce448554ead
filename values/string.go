// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package values

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Masterminds/semver/v3"
)

// String is a [Simple] string value with an optional pattern.
type String struct {
	Simple[string]

	pattern *regexp.Regexp
}

// Pattern returns the pattern of the string, or nil.
func (s *String) Pattern() *regexp.Regexp {
	return s.pattern
}

// SetPattern sets the regular expression all values must match.
// An empty expression clears the pattern. It returns an error without
// changing anything if the expression is invalid or if the current value
// or default value does not match it.
func (s *String) SetPattern(expr string) error {
	if expr == "" {
		s.pattern = nil
		return nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return fmt.Errorf("values: %q: %w", s.Name, err)
	}
	for _, cur := range []*string{s.value, s.def} {
		if cur != nil && !re.MatchString(*cur) {
			return &ValidationError{Name: s.Name, Value: *cur, Reason: "does not match " + expr}
		}
	}
	s.pattern = re
	return nil
}

// CheckValue rejects values that do not match the pattern,
// then applies the checks of [Simple].
func (s *String) CheckValue(v string) error {
	if s.pattern != nil && !s.pattern.MatchString(v) {
		return &ValidationError{Name: s.Name, Value: v, Reason: "does not match " + s.pattern.String()}
	}
	return s.Simple.CheckValue(v)
}

// ConvertValue accepts strings, and formats numbers and booleans,
// which decoders produce for unquoted scalars.
func (s *String) ConvertValue(data any) (string, error) {
	switch v := data.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	if f, ok := toFloat(data); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("values: %q: %w %v (%T) to string", s.Name, ErrConvert, data, data)
}

// Boolean is a [Simple] bool value.
type Boolean struct {
	Simple[bool]
}

// ConvertValue accepts booleans and the strings accepted by [strconv.ParseBool].
func (b *Boolean) ConvertValue(data any) (bool, error) {
	switch v := data.(type) {
	case bool:
		return v, nil
	case string:
		if r, err := strconv.ParseBool(v); err == nil {
			return r, nil
		}
	}
	return false, fmt.Errorf("values: %q: %w %v (%T) to boolean", b.Name, ErrConvert, data, data)
}

// Toggle inverts the value.
func (b *Boolean) Toggle() error {
	return b.SetValue(!b.Value())
}

// Version is a [String] holding a semantic version.
type Version struct {
	String
}

// CheckValue rejects values that are not semantic versions,
// then applies the checks of [String].
func (v *Version) CheckValue(s string) error {
	if _, err := semver.NewVersion(s); err != nil {
		return &ValidationError{Name: v.Name, Value: s, Reason: err.Error()}
	}
	return v.String.CheckValue(s)
}

// Semver returns the parsed version, or nil if it is undefined.
func (v *Version) Semver() *semver.Version {
	s, ok := v.ValueTry()
	if !ok {
		return nil
	}
	sv, err := semver.NewVersion(s)
	if err != nil {
		return nil
	}
	return sv
}

// Satisfies returns whether the version satisfies the given
// constraint, such as "^1.2" or ">= 1.0, < 2".
func (v *Version) Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("values: %q: %w", v.Name, err)
	}
	sv := v.Semver()
	if sv == nil {
		return false, nil
	}
	return c.Check(sv), nil
}
