// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	errs "coeditar.org/core/base/errors"
	"coeditar.org/core/host"
	"coeditar.org/core/render"
	"coeditar.org/core/tree"
	"coeditar.org/core/values"
)

// ErrNotAttached is returned when rendering a view that has no viewport.
var ErrNotAttached = errors.New("xyz: view is not attached to a viewport")

// View renders a space from the point of view of a presence.
// It must be attached to a renderer and a host with [View.Attach]
// before it renders.
type View struct {
	tree.Item

	// Space is the name of the rendered space.
	Space *values.String

	// Presence is the name of the presence the camera is attached to.
	// The camera stays at the origin of the space if there is none.
	Presence *values.String

	// FieldOfView is the vertical field of view, 60° by default.
	FieldOfView *values.Angle

	// Near is the distance of the near clipping plane, 1 cm by default.
	Near *values.Distance

	// Far is the distance of the far clipping plane, 1 km by default.
	Far *values.Distance

	// Background is the background color, opaque black by default.
	Background *values.Color

	viewport *Viewport
}

// Viewport connects a [View] to the renderer that draws it and the
// host that drives and displays it. The view can be replaced, for
// example by the same view of a reloaded app.
type Viewport struct {

	// Renderer draws the frames.
	Renderer render.Renderer

	// Host provides the surface and the frame and resize callbacks.
	Host host.Host

	// Camera is the camera of the view.
	Camera *render.Camera

	// Frames is the number of frames rendered.
	Frames int

	view *View
	last time.Time
}

// NewViewport returns a new viewport rendering with the given renderer
// on every frame of the given host, and resizing with its surface.
// Frame errors are logged.
func NewViewport(r render.Renderer, h host.Host) *Viewport {
	vp := &Viewport{Renderer: r, Host: h, Camera: render.NewCamera("camera")}
	h.OnFrame(func(now time.Time) {
		errs.Log(vp.RenderFrame(now))
	})
	h.OnResize(vp.Resize)
	s := h.Surface()
	vp.Resize(s.Width, s.Height)
	return vp
}

// View returns the view rendered by the viewport, or nil.
func (vp *Viewport) View() *View {
	return vp.view
}

// SetView sets the view rendered by the viewport, detaching the
// previous view.
func (vp *Viewport) SetView(v *View) {
	if vp.view != nil {
		vp.view.viewport = nil
	}
	vp.view = v
	v.viewport = vp
	vp.Camera.Name = v.Name
}

// Resize resizes the renderer and sets the aspect ratio of the camera.
func (vp *Viewport) Resize(width, height int) {
	vp.Renderer.Resize(width, height)
	if height > 0 {
		vp.Camera.Aspect = float32(width) / float32(height)
	}
}

// RenderFrame renders the view at the given time. See [View.RenderFrame].
func (vp *Viewport) RenderFrame(now time.Time) error {
	if vp.view == nil {
		return ErrNotAttached
	}
	return vp.view.RenderFrame(now)
}

func (v *View) Init() {
	v.Space = tree.New[*values.String](v.Children(), "space")
	v.Presence = tree.New[*values.String](v.Children(), "presence")
	v.FieldOfView = tree.New[*values.Angle](v.Children(), "fieldOfView")
	errs.Log(v.FieldOfView.SetRange(1, 179))
	errs.Log(v.FieldOfView.SetDefault(60))
	v.Near = tree.New[*values.Distance](v.Children(), "near")
	errs.Log(v.Near.SetRange(1e-6, 1e7))
	errs.Log(v.Near.SetDefault(0.01))
	v.Far = tree.New[*values.Distance](v.Children(), "far")
	errs.Log(v.Far.SetRange(1e-6, 1e9))
	errs.Log(v.Far.SetDefault(1000))
	v.Background = tree.New[*values.Color](v.Children(), "background")
	errs.Log(v.Background.SetDefaults(0, 0, 0, 1))
}

// Viewport returns the viewport of the view, or nil if it is not attached.
func (v *View) Viewport() *Viewport {
	return v.viewport
}

// Attach attaches the view to a new viewport with the given renderer
// and host. See [NewViewport].
func (v *View) Attach(r render.Renderer, h host.Host) *Viewport {
	vp := NewViewport(r, h)
	vp.SetView(v)
	return vp
}

// RenderFrame renders a frame at the given time: it runs the behaviors
// of the space, updates the app tree with the time since the previous
// frame, places the camera at the eye of the presence, applies the lens
// parameters and renders the space.
func (v *View) RenderFrame(now time.Time) error {
	vp := v.viewport
	if vp == nil {
		return ErrNotAttached
	}
	app := tree.ParentByType[*App](v)
	if app == nil {
		return fmt.Errorf("xyz: view %s is not in an app", v.Path())
	}
	space := app.Space(v.Space.Value())
	if space == nil {
		return fmt.Errorf("%w %q for view %s", ErrNoSpace, v.Space.Value(), v.Path())
	}
	dt := 0.0
	if !vp.last.IsZero() {
		dt = now.Sub(vp.last).Seconds()
	}
	vp.last = now

	space.Step(dt)
	app.Update(dt, false, now)

	if p := app.Presence(v.Presence.Value()); p != nil && p.SpaceNode() == space {
		p.Representation().Add(&vp.Camera.Representation)
		vp.Camera.Pose.Pos.Set(0, float32(p.Height.Value()), 0)
	} else if vp.Camera.Parent() != nil {
		vp.Camera.Detach()
		vp.Camera.Pose.Pos.Set(0, 0, 0)
	}
	vp.Camera.SetLens(float32(v.FieldOfView.Value()), float32(v.Near.Value()), float32(v.Far.Value()))
	vp.Renderer.SetBackground(v.BackgroundRGBA())
	if err := vp.Renderer.Render(vp.Camera, space.SceneRoot()); err != nil {
		return err
	}
	vp.Frames++
	return nil
}

// BackgroundRGBA returns the background color as an 8 bit color.
func (v *View) BackgroundRGBA() color.RGBA {
	to8 := func(n *values.Number) uint8 {
		return uint8(math.Round(n.Value() * 255))
	}
	bg := v.Background
	return color.RGBA{R: to8(bg.R), G: to8(bg.G), B: to8(bg.B), A: to8(bg.A)}
}
