// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/google/uuid"

	"coeditar.org/core/base/errors"
	"coeditar.org/core/tree"
	"coeditar.org/core/values"
)

// uuidPattern matches the canonical text form of a UUID.
const uuidPattern = `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`

// User is a person using the app, present in spaces through presences.
type User struct {
	tree.Item

	// ID is the unique identifier of the user, a UUID.
	// A random one is set on creation.
	ID *values.String

	// Nickname is the name shown to other users.
	Nickname *values.String

	// Color is the color that identifies the user to other users.
	Color *values.Color

	// Presences are the presences of the user in spaces.
	Presences *tree.Relation
}

func (u *User) Init() {
	u.ID = tree.New[*values.String](u.Children(), "id")
	errors.Log(u.ID.SetPattern(uuidPattern))
	errors.Log(u.ID.SetValue(uuid.NewString()))
	u.Nickname = tree.New[*values.String](u.Children(), "nickname")
	u.Color = tree.New[*values.Color](u.Children(), "color")
	u.Presences = tree.NewRelation[*Presence](u, "presences")
}

// UUID returns the parsed ID of the user.
func (u *User) UUID() (uuid.UUID, error) {
	return uuid.Parse(u.ID.Value())
}

// DisplayName returns the nickname of the user, or its name if it has none.
func (u *User) DisplayName() string {
	if nm := u.Nickname.Value(); nm != "" {
		return nm
	}
	return u.Name
}

// Presence returns the presence with the given name, or nil.
func (u *User) Presence(name string) *Presence {
	p, _ := u.Presences.ByName(name).(*Presence)
	return p
}

// NewPresence creates a new presence with the given name in the given space.
func (u *User) NewPresence(name, space string) *Presence {
	p := tree.New[*Presence](u.Presences, name)
	errors.Log(p.Space.SetValue(space))
	return p
}

// PresenceModes are the valid modes of a [Presence].
var PresenceModes = []string{"local", "remote"}

// Presence is the embodiment of a user in a space: an entity whose
// representation is attached to the scene of its space.
type Presence struct {
	Entity

	// Space is the name of the space the presence is in.
	Space *values.String

	// Mode is whether the presence is driven by this device
	// ("local") or by another one ("remote").
	Mode *values.String

	// Height is the eye height above the position of the presence,
	// 1.6 m by default.
	Height *values.Distance
}

func (p *Presence) Init() {
	p.Entity.Init()
	p.Space = tree.New[*values.String](p.Children(), "space")
	p.Mode = tree.New[*values.String](p.Children(), "mode")
	errors.Log(p.Mode.SetValid(PresenceModes...))
	errors.Log(p.Mode.SetDefault("local"))
	p.Height = tree.New[*values.Distance](p.Children(), "height")
	errors.Log(p.Height.SetRange(0, 100))
	errors.Log(p.Height.SetDefault(1.6))
}

// User returns the user of the presence.
func (p *Presence) User() *User {
	return tree.ParentByType[*User](p)
}

// SpaceNode returns the space the presence is in, or nil.
func (p *Presence) SpaceNode() *Space {
	app := tree.ParentByType[*App](p)
	if app == nil {
		return nil
	}
	return app.Space(p.Space.Value())
}

// IsLocal returns whether the presence is driven by this device.
func (p *Presence) IsLocal() bool {
	return p.Mode.Value() == "local"
}

func (p *Presence) NodeUpdate(deltaTime float64, data any) {
	p.Entity.NodeUpdate(deltaTime, data)
	if s := p.SpaceNode(); s != nil {
		s.SceneRoot().Add(p.repr)
	}
}
