// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host defines the capabilities a view needs from its host
// environment: a display surface, a per-frame callback, resize
// notifications and fullscreen state. [Ticker] is a host driven by a
// timer, for headless use.
package host

import (
	"errors"
	"time"
)

// ErrFullscreenUnsupported is returned by hosts that can not go fullscreen.
var ErrFullscreenUnsupported = errors.New("host: fullscreen is not supported")

// Surface is a display surface created by a host.
type Surface struct {

	// ID identifies the surface within its host.
	ID string

	// Width and Height are the size of the surface in pixels.
	Width, Height int
}

// Aspect returns the aspect ratio (width / height) of the surface,
// or 1 if it has no height.
func (s *Surface) Aspect() float64 {
	if s.Height == 0 {
		return 1
	}
	return float64(s.Width) / float64(s.Height)
}

// Host is the environment a view is displayed in.
type Host interface {

	// Surface returns the display surface, creating it on first use.
	Surface() *Surface

	// OnFrame adds a function called once per frame with the frame time.
	OnFrame(fun func(now time.Time))

	// OnResize adds a function called when the surface is resized.
	OnResize(fun func(width, height int))

	// Fullscreen returns whether the surface is fullscreen.
	Fullscreen() bool

	// RequestFullscreen requests entering or leaving fullscreen.
	RequestFullscreen(on bool) error
}
