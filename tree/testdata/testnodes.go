// Copyright (c) 2026, CoEditAR. All rights reserved.
// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testdata has node types used in the tree tests.
package testdata

import (
	"fmt"

	"coeditar.org/core/tree"
)

// Leaf is a node holding an optional number.
type Leaf struct {
	tree.Item
	Value *float64
}

// Set sets the value, invalidating the leaf if it changed.
func (l *Leaf) Set(v float64) {
	if l.Value != nil && *l.Value == v {
		return
	}
	l.Value = &v
	l.Invalidate()
}

func (l *Leaf) Serialize(mode tree.Mode) any {
	if l.Value == nil {
		return nil
	}
	return *l.Value
}

func (l *Leaf) Deserialize(data any, mode tree.Mode) error {
	switch v := data.(type) {
	case float64:
		l.Set(v)
	case int:
		l.Set(float64(v))
	default:
		return fmt.Errorf("leaf %s: unsupported value %v", l.Name, data)
	}
	return nil
}

// Group has two leaf slots and a relation of member groups.
type Group struct {
	tree.Item
	Leaf    *Leaf
	Other   *Leaf
	Members *tree.Relation
	Updates int
}

func (g *Group) Init() {
	g.Leaf = tree.New[*Leaf](g.Children(), "leaf")
	g.Other = tree.New[*Leaf](g.Children(), "other")
	g.Members = tree.NewRelation[*Group](g, "members")
}

func (g *Group) NodeUpdate(deltaTime float64, data any) {
	g.Updates++
}

// SubGroup is a group with an extra relation of sub groups
// nested under the members relation.
type SubGroup struct {
	Group
	Subs *tree.Relation
}

func (sg *SubGroup) Init() {
	sg.Group.Init()
	sg.Subs = tree.NewSubRelation(sg.Members, "subs", (*SubGroup)(nil))
}
