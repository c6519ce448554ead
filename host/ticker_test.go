// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "coeditar.org/core/host"
)

var _ Host = (*Ticker)(nil)

func TestTickerSurface(t *testing.T) {
	tk := NewTicker(0, 800, 600)
	assert.Equal(t, time.Second/60, tk.Interval)
	s := tk.Surface()
	assert.Same(t, s, tk.Surface())
	assert.Equal(t, 800, s.Width)
	assert.InDelta(t, 4.0/3, s.Aspect(), 1e-9)
	assert.Equal(t, 1.0, (&Surface{}).Aspect())
}

func TestTickerResizeAndFullscreen(t *testing.T) {
	tk := NewTicker(30, 800, 600)
	tk.Screen = [2]int{1280, 720}
	var sizes [][2]int
	tk.OnResize(func(w, h int) { sizes = append(sizes, [2]int{w, h}) })

	tk.Resize(800, 600)
	assert.Empty(t, sizes, "same size")
	tk.Resize(1024, 768)
	require.NoError(t, tk.RequestFullscreen(true))
	assert.True(t, tk.Fullscreen())
	tk.Resize(640, 480)
	require.NoError(t, tk.RequestFullscreen(true))
	require.NoError(t, tk.RequestFullscreen(false))
	assert.False(t, tk.Fullscreen())
	assert.Equal(t, [][2]int{{1024, 768}, {1280, 720}, {640, 480}}, sizes)
	assert.Equal(t, 640, tk.Surface().Width)
}

func TestTickerRun(t *testing.T) {
	tk := NewTicker(1000, 10, 10)
	tk.MaxFrames = 3
	var times []time.Time
	tk.OnFrame(func(now time.Time) { times = append(times, now) })
	require.NoError(t, tk.Run(context.Background()))
	assert.Len(t, times, 3)
	assert.Equal(t, 3, tk.Frames())
	assert.True(t, times[1].After(times[0]))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tk.MaxFrames = 0
	assert.ErrorIs(t, tk.Run(ctx), context.Canceled)
}

func TestTickerStep(t *testing.T) {
	tk := NewTicker(60, 10, 10)
	var got time.Time
	tk.OnFrame(func(now time.Time) { got = now })
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tk.Step(now)
	assert.Equal(t, now, got)
	assert.Equal(t, 1, tk.Frames())
}
