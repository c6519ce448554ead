// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types provides the runtime type registry used by the tree
// system to classify node types into a single-inheritance ancestry
// and to create new instances of a type by name.
package types

import (
	"reflect"
	"strings"
)

// Type represents a registered node type.
type Type struct {

	// Name is the unique, package-unqualified name of the type (eg: Entity).
	Name string

	// IDName is the kebab-case version of Name that is suitable
	// for use in an ID or as a default node name (eg: space-entity).
	IDName string

	// Parent is the type this type derives from, or nil for a root type.
	Parent *Type

	// Children are the types directly deriving from this type,
	// in registration order.
	Children []*Type

	// Instances are all values created of exactly this type,
	// in creation order. See [Registry.AddInstance].
	Instances []any

	// ReflectType is the non-pointer Go type described by this type.
	ReflectType reflect.Type

	// ID is the unique type ID number within its registry.
	ID uint64
}

func (tp *Type) String() string {
	if tp == nil {
		return "<nil>"
	}
	return tp.Name
}

// Is returns true if the given name is the name of this type
// or the name of any of its ancestors.
func (tp *Type) Is(name string) bool {
	for t := tp; t != nil; t = t.Parent {
		if t.Name == name {
			return true
		}
	}
	return false
}

// IsType returns true if this type is the given type or derives from it.
func (tp *Type) IsType(typ *Type) bool {
	for t := tp; t != nil; t = t.Parent {
		if t == typ {
			return true
		}
	}
	return false
}

// Ancestors returns the chain of parent types, starting
// with the direct parent and ending with the root type.
func (tp *Type) Ancestors() []*Type {
	var anc []*Type
	for t := tp.Parent; t != nil; t = t.Parent {
		anc = append(anc, t)
	}
	return anc
}

// Depth returns the number of ancestors of this type.
func (tp *Type) Depth() int {
	d := 0
	for t := tp.Parent; t != nil; t = t.Parent {
		d++
	}
	return d
}

// New returns a new pointer instance of the type, eg: *Entity.
// It returns nil if the type has no [Type.ReflectType].
func (tp *Type) New() any {
	if tp.ReflectType == nil {
		return nil
	}
	return reflect.New(tp.ReflectType).Interface()
}

// TypeName returns the normalized type name for the given [reflect.Type]:
// pointers are dereferenced and the package path is removed,
// so *xyz.Entity becomes Entity. Package paths inside generic type
// arguments are also removed, so Simple[float64] stays as it is.
func TypeName(rt reflect.Type) string {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	nm := rt.Name()
	if nm == "" {
		nm = rt.String()
	}
	open := strings.Index(nm, "[")
	if open < 0 {
		return nm
	}
	args := strings.Split(nm[open+1:len(nm)-1], ",")
	for i, a := range args {
		if li := strings.LastIndex(a, "."); li >= 0 {
			args[i] = a[li+1:]
		}
	}
	return nm[:open] + "[" + strings.Join(args, ",") + "]"
}

// IDName returns the kebab-case version of the given type name.
func IDName(name string) string {
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	var b strings.Builder
	for i, r := range name {
		lower := r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
		if !lower && r >= 'A' && r <= 'Z' {
			if i > 0 {
				prevLower := name[i-1] >= 'a' && name[i-1] <= 'z'
				nextLower := i+1 < len(name) && name[i+1] >= 'a' && name[i+1] <= 'z'
				if prevLower || (nextLower && name[i-1] >= 'A' && name[i-1] <= 'Z') {
					b.WriteByte('-')
				}
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
