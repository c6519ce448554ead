// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package values

import (
	"fmt"

	"coeditar.org/core/base/ordmap"
	"coeditar.org/core/tree"
)

// Complex is a value made of an ordered list of named [Number] components,
// such as a vector or a color. Components are children of the value, so a
// change of any component invalidates the value and its ancestors.
type Complex struct {
	tree.Item

	components []*Number
}

// AddComponents adds new number components with the given names.
// It is called in the Init method of types embedding Complex.
func (c *Complex) AddComponents(names ...string) []*Number {
	added := make([]*Number, len(names))
	for i, name := range names {
		added[i] = tree.New[*Number](c.Children(), name)
	}
	c.components = append(c.components, added...)
	return added
}

// AddComponent appends the given number node, which may be embedded in
// a type with its own CheckValue, as the next component. The node should
// be a child of the complex value.
func (c *Complex) AddComponent(n *Number) {
	c.components = append(c.components, n)
}

// Components returns the number components.
func (c *Complex) Components() []*Number {
	return c.components
}

// Component returns the component with the given name, or nil.
func (c *Complex) Component(name string) *Number {
	for _, n := range c.components {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// SetDefaults sets the default values of the components in order.
func (c *Complex) SetDefaults(vals ...float64) error {
	for i, v := range vals {
		if i >= len(c.components) {
			break
		}
		if err := c.components[i].SetDefault(v); err != nil {
			return err
		}
	}
	return nil
}

// SetRanges sets the same range on all components.
func (c *Complex) SetRanges(min, max float64) error {
	for _, n := range c.components {
		if err := n.SetRange(min, max); err != nil {
			return err
		}
	}
	return nil
}

// ToArray returns the values of the components in order.
func (c *Complex) ToArray() []float64 {
	a := make([]float64, len(c.components))
	for i, n := range c.components {
		a[i] = n.Value()
	}
	return a
}

// FromArray sets the components in order from the given values. Components
// past the end of the values are cleared, so that they fall back to their
// defaults. Values past the last component are ignored. All values are
// checked first, and nothing is changed if any of them is invalid.
func (c *Complex) FromArray(vals ...float64) error {
	for i, v := range vals {
		if i >= len(c.components) {
			break
		}
		if err := c.components[i].check(v); err != nil {
			return err
		}
	}
	for i, n := range c.components {
		if i < len(vals) {
			if err := n.SetValue(vals[i]); err != nil {
				return err
			}
			continue
		}
		n.Clear()
	}
	return nil
}

// IsDefault returns whether all components have their default values.
func (c *Complex) IsDefault() bool {
	for _, n := range c.components {
		if !n.IsDefault() {
			return false
		}
	}
	return true
}

// IsUndefined returns whether all components are undefined.
func (c *Complex) IsUndefined() bool {
	for _, n := range c.components {
		if !n.IsUndefined() {
			return false
		}
	}
	return true
}

// Serialize returns an ordered map of the values of the children by name.
// In [tree.ModeSimple], children without an explicit value are omitted,
// and nil is returned if none is left.
func (c *Complex) Serialize(mode tree.Mode) any {
	om := ordmap.New[string, any]()
	for _, kid := range c.Children().All() {
		v := kid.Serialize(mode)
		if v == nil && mode == tree.ModeSimple {
			continue
		}
		om.Add(kid.AsItem().Name, v)
	}
	if mode == tree.ModeSimple && om.Len() == 0 {
		return nil
	}
	return om
}

// Deserialize accepts a float64 slice in addition to the data accepted
// by [tree.Item.Deserialize], which it applies with [Complex.FromArray].
func (c *Complex) Deserialize(data any, mode tree.Mode) error {
	if a, ok := data.([]float64); ok {
		return c.FromArray(a...)
	}
	return c.Item.Deserialize(data, mode)
}

// Text returns the component values formatted as text.
func (c *Complex) Text() string {
	return fmt.Sprint(c.ToArray())
}
