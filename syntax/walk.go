// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Inspect traverses the tree rooted at n in depth-first order. It starts
// by calling f(n); if f returns true, Inspect invokes f recursively for
// each of the non-nil children of n, followed by a call of f(nil).
func Inspect(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	switch n := n.(type) {
	case *ArgList:
		for _, a := range n.Args {
			Inspect(a, f)
		}
	case *Arg:
		if n.Name != nil {
			Inspect(n.Name, f)
		}
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *CallExpr:
		Inspect(n.Fun, f)
		Inspect(n.Args, f)
		if n.Lambda != nil {
			Inspect(n.Lambda, f)
		}
	case *LambdaLit:
		for _, p := range n.Params {
			Inspect(p, f)
		}
		if n.Body != nil {
			Inspect(n.Body, f)
		}
	case *LambdaParam:
		Inspect(n.Name, f)
		if n.Type != nil {
			Inspect(n.Type, f)
		}
	case *RawExpr:
		for _, r := range n.Refs {
			Inspect(r, f)
		}
	case *Ident, *BasicLit, *Ref:
		// leaves
	}
	f(nil)
}

// Collect returns the nodes of type T in the trees rooted at the given
// arguments, in depth-first order.
func Collect[T Node](args []*Arg) []T {
	var nodes []T
	for _, a := range args {
		Inspect(a, func(n Node) bool {
			if t, ok := n.(T); ok {
				nodes = append(nodes, t)
			}
			return true
		})
	}
	return nodes
}
