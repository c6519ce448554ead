// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/muesli/termenv"

	"coeditar.org/core/base/indent"
	"coeditar.org/core/tree"
	"coeditar.org/core/types"
	"coeditar.org/core/xyz"
)

// texter is implemented by value nodes.
type texter interface {
	Text() string
}

// PrintTree writes the tree of the given node to w, one node per line,
// with values on the line of their node. Colors are used if w is a
// terminal that supports them.
func PrintTree(w io.Writer, n tree.Node) error {
	out := termenv.NewOutput(w)
	depth := func(n tree.Node) int {
		d := 0
		for p := n.AsItem().Parent(); p != nil; p = p.AsItem().Parent() {
			d++
		}
		return d
	}
	base := depth(n)
	var err error
	n.AsItem().WalkDown(func(k tree.Node) bool {
		if err != nil {
			return tree.Break
		}
		it := k.AsItem()
		ind := indent.Spaces(depth(k)-base, 2)
		name := out.String(it.Name).Bold().Foreground(out.Color("4"))
		typ := out.String(it.Type().Name).Faint()
		if tx, ok := k.(texter); ok {
			_, err = fmt.Fprintf(w, "%s%s %s = %s\n", ind, name, typ, tx.Text())
			return tree.Break
		}
		_, err = fmt.Fprintf(w, "%s%s %s\n", ind, name, typ)
		return tree.Continue
	})
	return err
}

// Types writes the hierarchy of the node types of apps to w, with the
// ID name of every type and its number of instances in a sample app
// that has one node of every kind.
func Types(w io.Writer) error {
	app, err := xyz.NewApp(tree.NewContext(), "sample")
	if err != nil {
		return err
	}
	s := app.NewSpace("space")
	e := s.NewEntity("entity")
	e.NewEntity("child")
	e.NewBehavior("behavior", "", "")
	app.NewUser("user").NewPresence("presence", "space")
	app.NewView("view")

	out := termenv.NewOutput(w)
	var write func(t *types.Type, depth int) error
	write = func(t *types.Type, depth int) error {
		_, err := fmt.Fprintf(w, "%s%s %s\n", indent.Spaces(depth, 2),
			out.String(t.Name).Bold().Foreground(out.Color("4")),
			out.String(fmt.Sprintf("(%s, %d)", t.IDName, len(t.Instances))).Faint())
		if err != nil {
			return err
		}
		kids := slices.Clone(t.Children)
		slices.SortFunc(kids, func(a, b *types.Type) int { return strings.Compare(a.Name, b.Name) })
		for _, k := range kids {
			if err := write(k, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, t := range app.Context().Types.Roots() {
		if err := write(t, 0); err != nil {
			return err
		}
	}
	return nil
}
