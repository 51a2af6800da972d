// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merge

import (
	"github.com/orange-guo/fill-kotlin-arguments/internal/snippet"
	"github.com/orange-guo/fill-kotlin-arguments/syntax"
)

// A Surface is an interactive editor able to walk the user through the
// tab stops of a template.
type Surface interface {
	// RunTemplate presents the argument list that starts at offset as
	// the given snippet, focusing its first tab stop.
	RunTemplate(offset int, snippet string)
}

// template returns the list in text as a snippet in which the value of
// each argument from index first on is a placeholder.
func template(text string, first int) (string, error) {
	list, err := syntax.ParseArgs(text)
	if err != nil {
		return "", err
	}
	var b snippet.Builder
	last := 0
	for _, a := range list.Args[first:] {
		b.WriteText(text[last:a.Value.Pos()])
		value := text[a.Value.Pos():a.Value.End()]
		b.WritePlaceholder(func(b *snippet.Builder) {
			b.WriteText(value)
		})
		last = a.Value.End()
	}
	b.WriteText(text[last:])
	return b.String(), nil
}
