// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package values provides the leaf value node types of the tree:
// [Simple] scalar values with defaults and validation, [Complex]
// fixed-size groups of numbers such as vectors and colors, and
// [Measure] numbers with measurement units.
package values

import (
	"errors"
	"fmt"
	"slices"

	"coeditar.org/core/tree"
)

var (
	// ErrInvalidValue is the sentinel wrapped by [ValidationError].
	ErrInvalidValue = errors.New("invalid value")

	// ErrConvert is returned when deserialized data can not be
	// converted to the value type of a node.
	ErrConvert = errors.New("can not convert value")
)

// ValidationError is returned when a value, default or constraint
// does not pass the checks of a node.
type ValidationError struct {

	// Name is the name of the node.
	Name string

	// Value is the offending value.
	Value any

	// Reason describes the failed check.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("values: invalid value %v for %q: %s", e.Value, e.Name, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidValue }

// checker is implemented by all simple values; types embedding [Simple]
// implement it to add their own rule in front of the base checks.
type checker[T comparable] interface {
	CheckValue(v T) error
}

// converter is implemented by types embedding [Simple] that accept
// deserialized data of other Go types than T.
type converter[T comparable] interface {
	ConvertValue(data any) (T, error)
}

// Simple is a leaf node holding a single comparable value, with an optional
// default value and an optional set of valid values. The value is undefined
// until it is set, and falls back to the default value when one is set.
type Simple[T comparable] struct {
	tree.Item

	value *T
	def   *T
	valid []T
}

// Value returns the value, the default value if no value is set,
// or the zero value if neither is set.
func (s *Simple[T]) Value() T {
	v, _ := s.ValueTry()
	return v
}

// ValueTry returns the value or the default value, and false
// if neither is set.
func (s *Simple[T]) ValueTry() (T, bool) {
	switch {
	case s.value != nil:
		return *s.value, true
	case s.def != nil:
		return *s.def, true
	}
	var zv T
	return zv, false
}

// HasValue returns whether a value has been explicitly set.
func (s *Simple[T]) HasValue() bool {
	return s.value != nil
}

// Default returns the default value, and false if there is none.
func (s *Simple[T]) Default() (T, bool) {
	if s.def == nil {
		var zv T
		return zv, false
	}
	return *s.def, true
}

// Valid returns the set of valid values, which is empty if any value is valid.
func (s *Simple[T]) Valid() []T {
	return s.valid
}

// IsDefault returns whether the value is not set or is equal to the default value.
func (s *Simple[T]) IsDefault() bool {
	return s.value == nil || (s.def != nil && *s.value == *s.def)
}

// IsUndefined returns whether neither a value nor a default value is set.
func (s *Simple[T]) IsUndefined() bool {
	return s.value == nil && s.def == nil
}

// SetValue sets the value. Setting the current value does nothing.
// Otherwise, the value is checked, and a [ValidationError] is returned
// without changing anything if it does not pass. On success, the value
// is stored and the node is invalidated.
func (s *Simple[T]) SetValue(v T) error {
	if cur, ok := s.ValueTry(); ok && cur == v {
		return nil
	}
	if err := s.check(v); err != nil {
		return err
	}
	s.value = &v
	s.Invalidate()
	return nil
}

// Clear unsets the value, so that it falls back to the default value.
// The node is invalidated if a value was set.
func (s *Simple[T]) Clear() {
	if s.value == nil {
		return
	}
	s.value = nil
	s.Invalidate()
}

// SetDefault sets the default value after checking it.
// The node is invalidated if the effective value changes.
func (s *Simple[T]) SetDefault(v T) error {
	if err := s.check(v); err != nil {
		return err
	}
	old, had := s.ValueTry()
	s.def = &v
	if s.value == nil && (!had || old != v) {
		s.Invalidate()
	}
	return nil
}

// SetValid sets the set of valid values. An empty set allows any value.
// It returns a [ValidationError] without changing anything if the current
// value or default value is not in the new set.
func (s *Simple[T]) SetValid(vals ...T) error {
	if len(vals) > 0 {
		for _, cur := range []*T{s.value, s.def} {
			if cur != nil && !slices.Contains(vals, *cur) {
				return &ValidationError{Name: s.Name, Value: *cur, Reason: fmt.Sprintf("not one of %v", vals)}
			}
		}
	}
	s.valid = slices.Clone(vals)
	return nil
}

// CheckValue returns a [ValidationError] if the given value is not
// in the set of valid values, if there is one.
func (s *Simple[T]) CheckValue(v T) error {
	if len(s.valid) > 0 && !slices.Contains(s.valid, v) {
		return &ValidationError{Name: s.Name, Value: v, Reason: fmt.Sprintf("not one of %v", s.valid)}
	}
	return nil
}

// check calls CheckValue on the most derived type, so that
// the checks of embedding types are applied.
func (s *Simple[T]) check(v T) error {
	if c, ok := s.This.(checker[T]); ok {
		return c.CheckValue(v)
	}
	return s.CheckValue(v)
}

// ConvertValue converts deserialized data to the value type.
func (s *Simple[T]) ConvertValue(data any) (T, error) {
	v, ok := data.(T)
	if !ok {
		return v, fmt.Errorf("values: %q: %w %v (%T) to %T", s.Name, ErrConvert, data, data, v)
	}
	return v, nil
}

// Serialize returns the value, or nil if there is none. In
// [tree.ModeSimple], only an explicitly set value is returned.
func (s *Simple[T]) Serialize(mode tree.Mode) any {
	if mode == tree.ModeSimple {
		if s.value == nil {
			return nil
		}
		return *s.value
	}
	v, ok := s.ValueTry()
	if !ok {
		return nil
	}
	return v
}

// Deserialize converts the given data to the value type and sets it.
// Nil data is ignored.
func (s *Simple[T]) Deserialize(data any, mode tree.Mode) error {
	if data == nil {
		return nil
	}
	var v T
	var err error
	if c, ok := s.This.(converter[T]); ok {
		v, err = c.ConvertValue(data)
	} else {
		v, err = s.ConvertValue(data)
	}
	if err != nil {
		return err
	}
	return s.SetValue(v)
}

// Text returns the value formatted as text, or an empty
// string if the value is undefined.
func (s *Simple[T]) Text() string {
	v, ok := s.ValueTry()
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}
