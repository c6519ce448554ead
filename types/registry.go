// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
)

// ErrNameCollision is the sentinel wrapped by [NameCollisionError].
var ErrNameCollision = errors.New("type name already registered")

// NameCollisionError is returned when two different Go types
// normalize to the same registered type name.
type NameCollisionError struct {
	Name     string
	Existing reflect.Type
	New      reflect.Type
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("types: name %q of %v is already used by %v", e.Name, e.New, e.Existing)
}

func (e *NameCollisionError) Unwrap() error { return ErrNameCollision }

// Registry records all of the types known to one application context.
// A Registry is not safe for concurrent use; types are expected to be
// registered from the goroutine that builds the tree.
type Registry struct {
	byName    map[string]*Type
	byReflect map[reflect.Type]*Type
	idCounter uint64
}

// NewRegistry returns a new empty [Registry].
func NewRegistry() *Registry {
	return &Registry{
		byName:    map[string]*Type{},
		byReflect: map[reflect.Type]*Type{},
	}
}

// Option configures an explicit registration in [Registry.Register].
type Option func(o *options)

type options struct {
	name   string
	parent *Type
	noAuto bool
}

// WithName registers the type under the given name instead of its Go name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithParent sets the parent type instead of deriving it
// from the first embedded struct field.
func WithParent(parent *Type) Option {
	return func(o *options) { o.parent = parent }
}

// AsRoot registers the type without any parent, even if
// it embeds another struct.
func AsRoot() Option {
	return func(o *options) { o.noAuto = true }
}

// TypeByName returns the type with the given name, or nil if there is none.
func (r *Registry) TypeByName(name string) *Type {
	return r.byName[name]
}

// TypeByNameTry returns the type with the given name,
// or an error if there is none.
func (r *Registry) TypeByNameTry(name string) (*Type, error) {
	if t, ok := r.byName[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("types: type %q not found", name)
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.byName)
}

// Types returns all registered types sorted by name.
func (r *Registry) Types() []*Type {
	ts := make([]*Type, 0, len(r.byName))
	for _, t := range r.byName {
		ts = append(ts, t)
	}
	slices.SortFunc(ts, func(a, b *Type) int { return strings.Compare(a.Name, b.Name) })
	return ts
}

// Roots returns the registered types that have no parent, sorted by name.
func (r *Registry) Roots() []*Type {
	return slices.DeleteFunc(r.Types(), func(t *Type) bool { return t.Parent != nil })
}

// TypeOf returns the type of the given value, registering it
// (and any of its not yet registered ancestors) on first use.
// The value may be a pointer or a non-pointer struct.
func (r *Registry) TypeOf(v any) (*Type, error) {
	if v == nil {
		return nil, errors.New("types: TypeOf nil value")
	}
	return r.typeOfReflect(reflect.TypeOf(v))
}

// Register explicitly registers the type of the given value with the given
// options. Registering an already registered Go type returns the existing type.
func (r *Registry) Register(v any, opts ...Option) (*Type, error) {
	if v == nil {
		return nil, errors.New("types: Register nil value")
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return r.add(reflect.TypeOf(v), o)
}

// MustRegister calls [Registry.Register] and panics on error.
func (r *Registry) MustRegister(v any, opts ...Option) *Type {
	t, err := r.Register(v, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// AddInstance records the given value as an instance of exactly the given type.
func (r *Registry) AddInstance(t *Type, v any) {
	t.Instances = append(t.Instances, v)
}

func (r *Registry) typeOfReflect(rt reflect.Type) (*Type, error) {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if t, ok := r.byReflect[rt]; ok {
		return t, nil
	}
	return r.add(rt, &options{})
}

// add registers the given reflect type. The parent, if not given,
// is the type of the first embedded struct field, which is registered
// recursively and memoized so that sibling types share it.
func (r *Registry) add(rt reflect.Type, o *options) (*Type, error) {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if t, ok := r.byReflect[rt]; ok {
		return t, nil
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("types: %v is not a struct type", rt)
	}
	name := o.name
	if name == "" {
		name = TypeName(rt)
	}
	if ex, has := r.byName[name]; has {
		return nil, &NameCollisionError{Name: name, Existing: ex.ReflectType, New: rt}
	}
	parent := o.parent
	if parent == nil && !o.noAuto {
		if emb := embeddedStruct(rt); emb != nil {
			p, err := r.typeOfReflect(emb)
			if err != nil {
				return nil, fmt.Errorf("types: parent of %s: %w", name, err)
			}
			parent = p
		}
	}
	// the parent registration may have claimed the name in the meantime
	if ex, has := r.byName[name]; has {
		return nil, &NameCollisionError{Name: name, Existing: ex.ReflectType, New: rt}
	}
	r.idCounter++
	t := &Type{
		Name:        name,
		IDName:      IDName(name),
		Parent:      parent,
		ReflectType: rt,
		ID:          r.idCounter,
	}
	if parent != nil {
		parent.Children = append(parent.Children, t)
	}
	r.byName[name] = t
	r.byReflect[rt] = t
	slog.Debug("types: registered type", "name", name, "parent", parent.String())
	return t, nil
}

// embeddedStruct returns the type of the first embedded
// (anonymous) struct field of rt, or nil if there is none.
func embeddedStruct(rt reflect.Type) reflect.Type {
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Struct {
			return ft
		}
	}
	return nil
}
