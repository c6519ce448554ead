// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"sync"

	"coeditar.org/core/math32"
)

// ErrNoScene is returned when rendering without a scene or a camera.
var ErrNoScene = errors.New("render: no scene or camera")

// Renderer draws a scene as seen from a camera.
type Renderer interface {

	// Render draws the visible representations of the scene
	// as seen from the given camera.
	Render(viewer *Camera, scene *Representation) error

	// Resize sets the size of the drawing surface in pixels.
	Resize(width, height int)

	// Size returns the size of the drawing surface in pixels.
	Size() (width, height int)

	// SetBackground sets the color the surface is cleared with.
	SetBackground(c color.RGBA)
}

// Drawn is a representation drawn in a [Frame].
type Drawn struct {

	// Name is the name of the representation.
	Name string

	// Object is the node of the representation.
	Object any

	// World is the world position of the representation.
	World math32.Vector3

	// Clip is the position in normalized device coordinates,
	// which are in [-1, 1] for points inside the view.
	Clip math32.Vector3
}

// Frame is a record of a frame rendered by [Headless].
type Frame struct {

	// Number is the number of the frame, starting at 1.
	Number int

	// Width and Height are the size of the surface.
	Width, Height int

	// Background is the background color.
	Background color.RGBA

	// Drawn are the visible representations in depth-first order.
	Drawn []Drawn
}

// DrawnByName returns the drawn representation with the given name, and false if there is none.
func (f *Frame) DrawnByName(name string) (Drawn, bool) {
	for _, d := range f.Drawn {
		if d.Name == name {
			return d, true
		}
	}
	return Drawn{}, false
}

// Headless is a [Renderer] that draws into memory: it computes the world
// and clip positions of every visible representation and records them
// as the last [Frame]. It is safe for concurrent use.
type Headless struct {

	// OnFrame is called with every rendered frame, if set.
	OnFrame func(f *Frame)

	mu         sync.Mutex
	width      int
	height     int
	background color.RGBA
	frames     int
	last       *Frame
}

// NewHeadless returns a new headless renderer with the given surface size.
func NewHeadless(width, height int) *Headless {
	return &Headless{width: width, height: height, background: color.RGBA{A: 255}}
}

func (h *Headless) Resize(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if width == h.width && height == h.height {
		return
	}
	slog.Debug("render: resize", "width", width, "height", height)
	h.width, h.height = width, height
}

func (h *Headless) Size() (width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *Headless) SetBackground(c color.RGBA) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.background = c
}

func (h *Headless) Render(viewer *Camera, scene *Representation) error {
	if viewer == nil || scene == nil {
		return ErrNoScene
	}
	h.mu.Lock()
	if h.width <= 0 || h.height <= 0 {
		h.mu.Unlock()
		return fmt.Errorf("render: invalid surface size %dx%d", h.width, h.height)
	}
	h.frames++
	f := &Frame{Number: h.frames, Width: h.width, Height: h.height, Background: h.background}
	h.mu.Unlock()

	scene.UpdateWorldMatrices()
	if !viewer.IsUnder(scene) {
		viewer.Root().UpdateWorldMatrices()
	}
	vp := viewer.ViewProjectionMatrix()
	scene.WalkVisible(func(r *Representation) {
		if r == &viewer.Representation {
			return
		}
		wp := r.Pose.WorldPos()
		f.Drawn = append(f.Drawn, Drawn{Name: r.Name, Object: r.Object, World: wp, Clip: project(vp, wp)})
	})

	h.mu.Lock()
	h.last = f
	h.mu.Unlock()
	if h.OnFrame != nil {
		h.OnFrame(f)
	}
	return nil
}

// project returns the given world position in normalized device coordinates.
func project(vp *math32.Matrix4, p math32.Vector3) math32.Vector3 {
	w := vp[3]*p.X + vp[7]*p.Y + vp[11]*p.Z + vp[15]
	c := p.MulMatrix4AsPoint(vp)
	if w == 0 {
		return c
	}
	return c.MulScalar(1 / w)
}

// Frames returns the number of rendered frames.
func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// LastFrame returns the last rendered frame, or nil.
func (h *Headless) LastFrame() *Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}
