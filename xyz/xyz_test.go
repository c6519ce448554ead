// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coeditar.org/core/codec"
	"coeditar.org/core/host"
	"coeditar.org/core/render"
	"coeditar.org/core/tree"
	"coeditar.org/core/types"
	"coeditar.org/core/xyz"
)

// Entity has the same type name as [xyz.Entity].
type Entity struct {
	tree.Item
}

type world struct {
	app   *xyz.App
	lobby *xyz.Space
	box   *xyz.SpaceEntity
	ann   *xyz.User
	phone *xyz.Presence
	view  *xyz.View
}

func newWorld(t *testing.T) *world {
	t.Helper()
	app, err := xyz.NewApp(tree.NewContext(), "app")
	require.NoError(t, err)
	w := &world{app: app}
	w.lobby = app.NewSpace("lobby")
	require.NoError(t, w.lobby.Description.SetValue("entrance hall"))
	w.box = w.lobby.NewEntity("box")
	require.NoError(t, w.box.Position.Set(0, 0, -5))
	w.ann = app.NewUser("ann")
	require.NoError(t, w.ann.Nickname.SetValue("Ann"))
	w.phone = w.ann.NewPresence("phone", "lobby")
	w.view = app.NewView("main")
	require.NoError(t, w.view.Space.SetValue("lobby"))
	require.NoError(t, w.view.Presence.SetValue("phone"))
	return w
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestTypeAncestry(t *testing.T) {
	ctx := tree.NewContext()
	require.NoError(t, xyz.Register(ctx))
	se := ctx.Types.TypeByName("SpaceEntity")
	require.NotNil(t, se)
	assert.True(t, se.Is("Entity"))
	assert.True(t, se.Is("SpaceEntity"))
	assert.False(t, se.Is("User"))
	assert.True(t, ctx.Types.TypeByName("Presence").Is("Entity"))

	err := ctx.Register(&Entity{})
	assert.ErrorIs(t, err, types.ErrNameCollision)
	var nce *types.NameCollisionError
	require.True(t, errors.As(err, &nce))
	assert.Equal(t, "Entity", nce.Name)

	ctx = tree.NewContext()
	require.NoError(t, ctx.Register(&Entity{}))
	_, err = xyz.NewApp(ctx, "app")
	assert.ErrorIs(t, err, types.ErrNameCollision)
}

func TestDeserializePosition(t *testing.T) {
	w := newWorld(t)
	crate := w.lobby.NewEntity("crate")
	w.app.Update(0, false, nil)
	require.True(t, w.app.Updated())
	mods := 0
	crate.OnModification.Listen(func(target, data any) bool {
		mods++
		return false
	})

	require.NoError(t, crate.Deserialize(`{"position": {"x": 2, "y": 0, "z": 0}}`, tree.ModeFull))
	assert.Equal(t, 2.0, crate.Position.X.Value())
	assert.Equal(t, 0.0, crate.Position.Y.Value())
	assert.Equal(t, 0.0, crate.Position.Z.Value())
	assert.False(t, crate.Position.Y.HasValue())
	assert.Equal(t, 1, mods)

	assert.False(t, crate.Updated())
	assert.False(t, crate.Position.Updated())
	crate.WalkUpParent(func(n tree.Node) bool {
		assert.False(t, n.AsItem().Updated(), n.AsItem().Path())
		return tree.Continue
	})
	assert.True(t, crate.Rotation.Updated())
	assert.True(t, w.box.Updated())
	assert.True(t, w.ann.Updated())
}

func TestDeserializeBehaviors(t *testing.T) {
	w := newWorld(t)
	starts, updates := 0, 0.0
	w.app.AddScript("fnA", func(b *xyz.Behavior, dt float64) error {
		starts++
		assert.Same(t, &w.box.Entity, b.Entity())
		return nil
	})
	w.app.AddScript("tick", func(b *xyz.Behavior, dt float64) error {
		updates += dt
		return nil
	})
	assert.Equal(t, []string{"fnA", "tick"}, w.app.ScriptNames())

	require.Equal(t, 0, w.box.Behaviors.Count())
	require.NoError(t, w.box.Deserialize(map[string]any{"behaviors": []any{map[string]any{"start": "fnA"}}}, tree.ModeFull))
	require.Equal(t, 1, w.box.Behaviors.Count())
	b := w.box.Behaviors.Index(0).(*xyz.Behavior)
	assert.Equal(t, "behavior-0", b.Name)
	assert.Equal(t, "fnA", b.Start.Value())
	assert.False(t, b.Started())

	w.box.NewBehavior("ticker", "", "tick")
	w.lobby.Step(0.5)
	w.lobby.Step(0.25)
	assert.True(t, b.Started())
	assert.Equal(t, 1, starts)
	assert.Equal(t, 0.75, updates)

	w.app.AddScript("fail", func(b *xyz.Behavior, dt float64) error { return errors.New("boom") })
	failing := w.box.NewBehavior("failing", "fail", "")
	assert.ErrorContains(t, failing.Run(0), "boom")
	assert.NoError(t, w.box.NewBehavior("unknown", "none", "none").Run(0))
}

func TestUpdateShortCircuit(t *testing.T) {
	w := newWorld(t)
	calls := 0
	w.app.Context().OnUpdate.Listen(func(target, data any) bool {
		calls++
		return false
	})
	boxCalls := 0
	w.box.OnUpdate.Listen(func(target, data any) bool {
		boxCalls++
		return false
	})
	w.app.Update(0.1, false, nil)
	assert.Positive(t, calls)
	assert.Equal(t, 1, boxCalls)

	calls, boxCalls = 0, 0
	w.app.Update(0.1, false, nil)
	assert.Zero(t, calls)
	assert.Zero(t, boxCalls)

	require.NoError(t, w.box.Position.X.SetValue(3))
	w.app.Update(0.1, false, nil)
	assert.Equal(t, 1, boxCalls)
	assert.Equal(t, float32(3), w.box.Representation().Pose.Pos.X)
	assert.True(t, w.app.Updated())
}

func TestCheckVersion(t *testing.T) {
	w := newWorld(t)
	assert.NoError(t, w.app.CheckVersion())
	assert.Equal(t, xyz.DataVersion, w.app.Version.Value())
	assert.Error(t, w.app.Version.SetValue("not a version"))

	require.NoError(t, w.app.Version.SetValue("1.4.2"))
	assert.NoError(t, w.app.CheckVersion())
	require.NoError(t, w.app.Version.SetValue("2.0.0"))
	assert.ErrorIs(t, w.app.CheckVersion(), xyz.ErrUnsupportedVersion)

	assert.ErrorIs(t, w.app.Load(`{"version": "0.9.0"}`, tree.ModeSimple), xyz.ErrUnsupportedVersion)
	assert.NoError(t, w.app.Load(`{"version": "1.0.0"}`, tree.ModeSimple))
}

func TestUsers(t *testing.T) {
	w := newWorld(t)
	id, err := w.ann.UUID()
	require.NoError(t, err)
	assert.Equal(t, id.String(), w.ann.ID.Value())
	assert.Error(t, w.ann.ID.SetValue("ann"))
	assert.Equal(t, "Ann", w.ann.DisplayName())
	assert.Equal(t, "bob", w.app.NewUser("bob").DisplayName())

	assert.Same(t, w.phone, w.app.Presence("phone"))
	assert.Nil(t, w.app.Presence("none"))
	assert.Same(t, w.ann, w.phone.User())
	assert.Same(t, w.lobby, w.phone.SpaceNode())
	assert.True(t, w.phone.IsLocal())
	assert.Error(t, w.phone.Mode.SetValue("ghost"))
	assert.Equal(t, []*xyz.Presence{w.phone}, w.lobby.Presences())
	assert.InDelta(t, 1.6, w.phone.Height.Value(), 1e-9)
}

func TestRoundTrip(t *testing.T) {
	w := newWorld(t)
	lid := w.box.NewEntity("lid")
	require.NoError(t, lid.Position.Set(0, 1, 0))
	require.NoError(t, w.box.Width.Parse("50cm"))
	require.NoError(t, lid.Rotation.Order.SetValue("ZYX"))
	w.box.NewBehavior("spin", "", "spin")
	require.NoError(t, w.ann.Color.SetHex("#ff8000"))
	require.NoError(t, w.view.FieldOfView.Parse("1 rad"))

	for _, mode := range []tree.Mode{tree.ModeTree, tree.ModeSimple} {
		want := w.app.Serialize(tree.ModeTree)
		b, err := codec.Marshal(codec.JSON, w.app.Serialize(mode))
		require.NoError(t, err)
		data, err := codec.Unmarshal(codec.JSON, b)
		require.NoError(t, err)

		app, err := xyz.NewApp(tree.NewContext(), "app")
		require.NoError(t, err)
		if mode == tree.ModeSimple {
			// simple data has no relation sequences, so the relations are grown first
			loaded := app.NewSpace("lobby")
			loaded.NewEntity("box").NewEntity("lid")
			app.NewUser("ann").NewPresence("phone", "lobby")
			app.NewView("main")
			app.Space("lobby").Entity("box").NewBehavior("spin", "", "")
		}
		require.NoError(t, app.Load(data, mode), mode.String())
		assert.Equal(t, toJSON(t, want), toJSON(t, app.Serialize(tree.ModeTree)), mode.String())
	}
}

func TestViewRender(t *testing.T) {
	w := newWorld(t)
	require.NoError(t, w.box.NewEntity("lid").Position.Set(0, 1, 0))
	spins := 0
	w.app.AddScript("spin", func(b *xyz.Behavior, dt float64) error {
		spins++
		r := b.Entity().Rotation
		return r.Y.SetValue(r.Y.Value() + 90*dt)
	})
	w.box.NewBehavior("spin", "", "spin")

	tk := host.NewTicker(60, 800, 400)
	hl := render.NewHeadless(1, 1)
	vp := w.view.Attach(hl, tk)
	assert.Same(t, vp, w.view.Viewport())
	width, height := hl.Size()
	assert.Equal(t, [2]int{800, 400}, [2]int{width, height})
	assert.Equal(t, float32(2), vp.Camera.Aspect)

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tk.Step(t0)
	f := hl.LastFrame()
	require.NotNil(t, f)
	assert.Equal(t, 1, vp.Frames)
	assert.Equal(t, uint8(255), f.Background.A)
	assert.Equal(t, uint8(0), f.Background.R)

	box, ok := f.DrawnByName("box")
	require.True(t, ok)
	assert.Same(t, w.box, box.Object)
	assert.InDelta(t, -5, box.World.Z, 1e-5)
	assert.InDelta(t, 0, box.Clip.X, 1e-5)
	assert.Less(t, box.Clip.Y, float32(0), "box is below the eye")
	assert.Greater(t, box.Clip.Y, float32(-1))
	assert.Greater(t, box.Clip.Z, float32(-1))
	assert.Less(t, box.Clip.Z, float32(1))
	lid, ok := f.DrawnByName("lid")
	require.True(t, ok)
	assert.InDelta(t, 1, lid.World.Y, 1e-5)
	_, ok = f.DrawnByName("phone")
	assert.True(t, ok)
	_, ok = f.DrawnByName("main")
	assert.False(t, ok, "camera is not drawn")
	assert.InDelta(t, 1.6, vp.Camera.Pose.WorldPos().Y, 1e-5)

	tk.Step(t0.Add(time.Second))
	assert.Equal(t, 2, spins)
	assert.InDelta(t, 90, w.box.Rotation.Y.Value(), 1e-9)
	assert.Equal(t, 2, hl.LastFrame().Number)

	tk.Resize(400, 400)
	width, _ = hl.Size()
	assert.Equal(t, 400, width)
	assert.Equal(t, float32(1), vp.Camera.Aspect)

	require.NoError(t, w.box.Visible.SetValue(false))
	require.NoError(t, w.view.RenderFrame(t0.Add(2*time.Second)))
	_, ok = hl.LastFrame().DrawnByName("lid")
	assert.False(t, ok, "children of hidden entities are hidden")
}

func TestViewPresenceInOtherSpace(t *testing.T) {
	w := newWorld(t)
	w.app.NewSpace("hall")
	tk := host.NewTicker(60, 100, 100)
	hl := render.NewHeadless(1, 1)
	vp := w.view.Attach(hl, tk)
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tk.Step(t0)
	assert.Same(t, w.phone.Representation(), vp.Camera.Parent())
	assert.InDelta(t, 1.6, vp.Camera.Pose.WorldPos().Y, 1e-5)

	require.NoError(t, w.phone.Space.SetValue("hall"))
	tk.Step(t0.Add(time.Second))
	assert.Same(t, w.app.Space("hall").SceneRoot(), w.phone.Representation().Parent())
	assert.Nil(t, vp.Camera.Parent(), "the camera leaves a presence in another space")
	assert.InDelta(t, 0, vp.Camera.Pose.WorldPos().Y, 1e-5)
	_, ok := hl.LastFrame().DrawnByName("phone")
	assert.False(t, ok)
	_, ok = hl.LastFrame().DrawnByName("box")
	assert.True(t, ok)
}

func TestViewportSetView(t *testing.T) {
	w := newWorld(t)
	tk := host.NewTicker(60, 100, 100)
	hl := render.NewHeadless(1, 1)
	vp := w.view.Attach(hl, tk)
	tk.Step(time.Now())

	other := newWorld(t)
	require.NoError(t, other.box.Position.Set(1, 0, -5))
	vp.SetView(other.view)
	assert.Nil(t, w.view.Viewport())
	assert.Same(t, other.view, vp.View())
	tk.Step(time.Now())
	box, ok := hl.LastFrame().DrawnByName("box")
	require.True(t, ok)
	assert.Same(t, other.box, box.Object)
	assert.InDelta(t, 1, box.World.X, 1e-5)
	assert.Equal(t, 2, vp.Frames)
}

func TestViewErrors(t *testing.T) {
	w := newWorld(t)
	assert.ErrorIs(t, w.view.RenderFrame(time.Now()), xyz.ErrNotAttached)
	w.view.Attach(render.NewHeadless(1, 1), host.NewTicker(60, 10, 10))
	require.NoError(t, w.view.Space.SetValue("nowhere"))
	assert.ErrorIs(t, w.view.RenderFrame(time.Now()), xyz.ErrNoSpace)
}
