// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coeditar.org/core/events"
)

func TestNewRequiresName(t *testing.T) {
	_, err := events.New("")
	assert.ErrorIs(t, err, events.ErrEmptyName)
	assert.Panics(t, func() { events.MustNew("") })

	ev, err := events.New("update")
	require.NoError(t, err)
	assert.Equal(t, "update", ev.Name())
	assert.Equal(t, "update", ev.String())
}

func TestTriggerOrder(t *testing.T) {
	ev := events.MustNew("modification")
	var calls []int
	for i := range 3 {
		ev.Listen(func(target, data any) bool {
			calls = append(calls, i)
			assert.Equal(t, "target", target)
			assert.Equal(t, 42, data)
			return false
		})
	}
	assert.Equal(t, 3, ev.Len())
	assert.False(t, ev.Trigger("target", 42))
	assert.Equal(t, []int{0, 1, 2}, calls)
}

func TestTriggerCapture(t *testing.T) {
	ev := events.MustNew("modification")
	var calls []string
	ev.Listen(func(target, data any) bool {
		calls = append(calls, "first")
		return false
	})
	ev.Listen(func(target, data any) bool {
		calls = append(calls, "veto")
		return true
	})
	ev.Listen(func(target, data any) bool {
		calls = append(calls, "never")
		return false
	})
	assert.True(t, ev.Trigger(nil, nil))
	assert.Equal(t, []string{"first", "veto"}, calls)
}

func TestListenNoDedupe(t *testing.T) {
	ev := events.MustNew("creation")
	n := 0
	fun := func(target, data any) bool {
		n++
		return false
	}
	ev.Listen(fun)
	ev.Listen(fun)
	ev.Trigger(nil, nil)
	assert.Equal(t, 2, n)
}
