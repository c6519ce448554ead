// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events provides a minimal named broadcaster with
// early-capture semantics, used for node creation,
// modification and update notifications.
package events

import (
	"errors"
)

// ErrEmptyName is returned when an [Event] is constructed without a name.
var ErrEmptyName = errors.New("events: event name must not be empty")

// Listener is a function registered on an [Event]. It receives the target
// of the broadcast and its associated data. Returning true captures the
// event, which stops it from being passed to any later listener.
type Listener func(target, data any) bool

// Event is an ordered list of [Listener] functions that are called
// in registration order when the event is triggered.
// The zero value is not usable; use [New].
type Event struct {
	name      string
	listeners []Listener
}

// New returns a new event with the given name.
func New(name string) (*Event, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Event{name: name}, nil
}

// MustNew calls [New] and panics on error.
func MustNew(name string) *Event {
	ev, err := New(name)
	if err != nil {
		panic(err)
	}
	return ev
}

// Name returns the name of the event.
func (ev *Event) Name() string {
	return ev.name
}

// Len returns the number of registered listeners.
func (ev *Event) Len() int {
	return len(ev.listeners)
}

// Listen adds the given listener to the end of the list.
// Listeners are not de-duplicated.
func (ev *Event) Listen(fun Listener) {
	ev.listeners = append(ev.listeners, fun)
}

// Trigger calls all listeners in registration order with the given target
// and data, and stops as soon as one of them returns true.
// It returns whether the event was captured by a listener;
// callers decide what a capture means for them.
func (ev *Event) Trigger(target, data any) bool {
	for _, fun := range ev.listeners {
		if fun(target, data) {
			return true
		}
	}
	return false
}

func (ev *Event) String() string {
	return ev.name
}
