// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"log/slog"

	"coeditar.org/core/tree"
	"coeditar.org/core/values"
)

// Behavior runs scripts registered on the [App] for its entity:
// the start script once before the first step, and the update script
// on every step.
type Behavior struct {
	tree.Item

	// Start is the name of the script run before the first step.
	Start *values.String

	// UpdateScript is the name of the script run on every step.
	UpdateScript *values.String

	started bool
}

func (b *Behavior) Init() {
	b.Start = tree.New[*values.String](b.Children(), "start")
	b.UpdateScript = tree.New[*values.String](b.Children(), "update")
}

// Entity returns the entity the behavior belongs to.
func (b *Behavior) Entity() *Entity {
	return AsEntity(b.Parent())
}

// App returns the app the behavior belongs to, or nil.
func (b *Behavior) App() *App {
	return tree.ParentByType[*App](b)
}

// Started returns whether the start script has been run.
func (b *Behavior) Started() bool {
	return b.started
}

// Run runs the start script if it has not been run yet, and then the
// update script. Scripts that are not registered on the app are skipped.
func (b *Behavior) Run(deltaTime float64) error {
	app := b.App()
	if app == nil {
		return nil
	}
	if !b.started {
		b.started = true
		if err := b.call(app, b.Start.Value(), 0); err != nil {
			return err
		}
	}
	return b.call(app, b.UpdateScript.Value(), deltaTime)
}

func (b *Behavior) call(app *App, name string, deltaTime float64) error {
	if name == "" {
		return nil
	}
	fn := app.Script(name)
	if fn == nil {
		slog.Debug("xyz: skipping unknown script", "behavior", b.Path(), "script", name)
		return nil
	}
	if err := fn(b, deltaTime); err != nil {
		return fmt.Errorf("xyz: script %q of %s: %w", name, b.Path(), err)
	}
	return nil
}
