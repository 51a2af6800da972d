// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merge

import (
	"github.com/orange-guo/fill-kotlin-arguments/internal/diff"
	"github.com/orange-guo/fill-kotlin-arguments/syntax"
)

// A Shortener converts qualified references to the shortest form that
// refers to the same declaration at the call site.
type Shortener interface {
	// Shorten returns the replacement for the qualified name, or false
	// to keep it as written.
	Shorten(name string) (string, bool)
}

// shorten passes every qualified reference in the arguments of the list
// in text from index first on through s. This includes the references in
// lambda parameter types and lambda bodies.
func shorten(text string, first int, s Shortener) (string, error) {
	list, err := syntax.ParseArgs(text)
	if err != nil {
		return "", err
	}
	var edits []diff.Edit
	for _, ref := range syntax.Collect[*syntax.Ref](list.Args[first:]) {
		if !ref.Qualified() {
			continue
		}
		name := ref.Name()
		if short, ok := s.Shorten(name); ok && short != name {
			edits = append(edits, diff.Edit{Start: ref.Pos(), End: ref.End(), New: short})
		}
	}
	return diff.Apply(text, edits)
}
