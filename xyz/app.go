// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"coeditar.org/core/base/errors"
	"coeditar.org/core/tree"
	"coeditar.org/core/values"
)

// DataVersion is the version of the data written by this package.
const DataVersion = "1.0.0"

// SupportedVersions is the constraint that the data version of an
// [App] must satisfy to be loaded.
const SupportedVersions = "^1.0.0"

// Script is a named function run by a [Behavior].
type Script func(b *Behavior, deltaTime float64) error

// App is the root of the application tree.
type App struct {
	tree.Item

	// Version is the version of the data of the app.
	Version *values.Version

	// Spaces are the spaces of the app.
	Spaces *tree.Relation

	// Users are the users of the app.
	Users *tree.Relation

	// Views are the views rendering the spaces of the app.
	Views *tree.Relation

	scripts map[string]Script
}

// NewApp returns a new app root in the given context. It returns an error
// if the node types of the package collide with types already registered
// in the context.
func NewApp(ctx *tree.Context, name string) (*App, error) {
	if err := Register(ctx); err != nil {
		return nil, err
	}
	return tree.NewRoot[*App](ctx, name), nil
}

func (a *App) Init() {
	a.Version = tree.New[*values.Version](a.Children(), "version")
	errors.Log(a.Version.SetDefault(DataVersion))
	a.Spaces = tree.NewRelation[*Space](a, "spaces")
	a.Users = tree.NewRelation[*User](a, "users")
	a.Views = tree.NewRelation[*View](a, "views")
	a.scripts = map[string]Script{}
}

// CheckVersion returns an error wrapping [ErrUnsupportedVersion] if the
// data version of the app does not satisfy [SupportedVersions].
func (a *App) CheckVersion() error {
	ok, err := a.Version.Satisfies(SupportedVersions)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedVersion, err)
	}
	if !ok {
		return fmt.Errorf("%w %s: want %s", ErrUnsupportedVersion, a.Version.Value(), SupportedVersions)
	}
	return nil
}

// Load deserializes the given data into the app and checks its version.
func (a *App) Load(data any, mode tree.Mode) error {
	if err := a.Deserialize(data, mode); err != nil {
		return err
	}
	if err := a.CheckVersion(); err != nil {
		return err
	}
	slog.Debug("xyz: loaded app", "app", a.Name, "spaces", a.Spaces.Count(), "users", a.Users.Count(), "views", a.Views.Count())
	return nil
}

// AddScript registers the given script under the given name,
// replacing any script of the same name.
func (a *App) AddScript(name string, fn Script) {
	a.scripts[name] = fn
}

// Script returns the script with the given name, or nil.
func (a *App) Script(name string) Script {
	return a.scripts[name]
}

// ScriptNames returns the names of the registered scripts in sorted order.
func (a *App) ScriptNames() []string {
	return slices.Sorted(maps.Keys(a.scripts))
}

// Space returns the space with the given name, or nil.
func (a *App) Space(name string) *Space {
	s, _ := a.Spaces.ByName(name).(*Space)
	return s
}

// User returns the user with the given name, or nil.
func (a *App) User(name string) *User {
	u, _ := a.Users.ByName(name).(*User)
	return u
}

// View returns the view with the given name, or nil.
func (a *App) View(name string) *View {
	v, _ := a.Views.ByName(name).(*View)
	return v
}

// Presence returns the first presence with the given name among
// the presences of all users, or nil.
func (a *App) Presence(name string) *Presence {
	for _, u := range a.Users.All() {
		if p := u.(*User).Presence(name); p != nil {
			return p
		}
	}
	return nil
}

// NewSpace creates a new space with the given name.
func (a *App) NewSpace(name string) *Space {
	return tree.New[*Space](a.Spaces, name)
}

// NewUser creates a new user with the given name.
func (a *App) NewUser(name string) *User {
	return tree.New[*User](a.Users, name)
}

// NewView creates a new view with the given name.
func (a *App) NewView(name string) *View {
	return tree.New[*View](a.Views, name)
}
