// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"context"
	"log/slog"
	"time"

	"coeditar.org/core/events"
)

// Ticker is a [Host] that calls its frame functions at a fixed rate from
// the goroutine that runs it. Its fullscreen mode resizes the surface to
// the configured screen size.
type Ticker struct {

	// Interval is the time between frames.
	Interval time.Duration

	// MaxFrames stops [Ticker.Run] after that many frames, if positive.
	MaxFrames int

	// Screen is the size of the surface in fullscreen mode.
	Screen [2]int

	surface    *Surface
	windowed   [2]int
	fullscreen bool
	frames     int
	onFrame    *events.Event
	onResize   *events.Event
}

// NewTicker returns a new ticker host running at the given number of
// frames per second, with a surface of the given size.
func NewTicker(fps float64, width, height int) *Ticker {
	if fps <= 0 {
		fps = 60
	}
	return &Ticker{
		Interval: time.Duration(float64(time.Second) / fps),
		Screen:   [2]int{1920, 1080},
		windowed: [2]int{width, height},
		onFrame:  events.MustNew("frame"),
		onResize: events.MustNew("resize"),
	}
}

func (t *Ticker) Surface() *Surface {
	if t.surface == nil {
		t.surface = &Surface{ID: "ticker", Width: t.windowed[0], Height: t.windowed[1]}
		slog.Debug("host: created surface", "width", t.surface.Width, "height", t.surface.Height)
	}
	return t.surface
}

func (t *Ticker) OnFrame(fun func(now time.Time)) {
	t.onFrame.Listen(func(target, data any) bool {
		fun(data.(time.Time))
		return false
	})
}

func (t *Ticker) OnResize(fun func(width, height int)) {
	t.onResize.Listen(func(target, data any) bool {
		sz := data.([2]int)
		fun(sz[0], sz[1])
		return false
	})
}

func (t *Ticker) Fullscreen() bool {
	return t.fullscreen
}

func (t *Ticker) RequestFullscreen(on bool) error {
	if on == t.fullscreen {
		return nil
	}
	t.fullscreen = on
	if on {
		t.resize(t.Screen[0], t.Screen[1])
	} else {
		t.resize(t.windowed[0], t.windowed[1])
	}
	return nil
}

// Resize sets the windowed size of the surface and notifies
// the resize functions unless the surface is fullscreen.
func (t *Ticker) Resize(width, height int) {
	t.windowed = [2]int{width, height}
	if !t.fullscreen {
		t.resize(width, height)
	}
}

func (t *Ticker) resize(width, height int) {
	s := t.Surface()
	if s.Width == width && s.Height == height {
		return
	}
	s.Width, s.Height = width, height
	t.onResize.Trigger(t, [2]int{width, height})
}

// Frames returns the number of frames run so far.
func (t *Ticker) Frames() int {
	return t.frames
}

// Step runs one frame with the given time.
func (t *Ticker) Step(now time.Time) {
	t.frames++
	t.onFrame.Trigger(t, now)
}

// Run runs frames at the configured interval until the context is
// done or [Ticker.MaxFrames] frames have run. It returns the context
// error in the first case and nil in the second.
func (t *Ticker) Run(ctx context.Context) error {
	t.Surface()
	tick := time.NewTicker(t.Interval)
	defer tick.Stop()
	start := t.frames
	for {
		if t.MaxFrames > 0 && t.frames-start >= t.MaxFrames {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-tick.C:
			t.Step(now)
		}
	}
}
