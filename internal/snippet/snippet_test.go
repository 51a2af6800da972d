// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snippet

import (
	"testing"
)

func TestSnippetBuilder(t *testing.T) {
	expect := func(expected string, fn func(*Builder)) {
		t.Helper()

		var b Builder
		fn(&b)
		if got := b.String(); got != expected {
			t.Errorf("got %q, expected %q", got, expected)
		}
	}

	expect("", func(b *Builder) {})

	expect(`hi { \} \$ | " , / \\`, func(b *Builder) {
		b.WriteText(`hi { } $ | " , / \`)
	})

	expect("${1:}", func(b *Builder) {
		b.WritePlaceholder(nil)
	})

	expect("f(a = ${1:0}, b = ${2:\"\"})$0", func(b *Builder) {
		b.WriteText("f(a = ")
		b.WritePlaceholder(func(b *Builder) { b.WriteText("0") })
		b.WriteText(", b = ")
		b.WritePlaceholder(func(b *Builder) { b.WriteText(`""`) })
		b.WriteText(")")
		b.WriteFinalTabstop()
	})

	expect("(a = $1, b = ${2:{ TODO(\"Implement Me\") \\}})", func(b *Builder) {
		b.WriteText("(a = ")
		b.WriteTabStop()
		b.WriteText(", b = ")
		b.WritePlaceholder(func(b *Builder) { b.WriteText(`{ TODO("Implement Me") }`) })
		b.WriteText(")")
	})

	expect("${1:one${2:two}}", func(b *Builder) {
		b.WritePlaceholder(func(b *Builder) {
			b.WriteText("one")
			b.WritePlaceholder(func(b *Builder) {
				b.WriteText("two")
			})
		})
	})
}

func TestClone(t *testing.T) {
	var b Builder
	b.WritePlaceholder(func(b *Builder) { b.WriteText("x") })
	c := b.Clone()
	c.WritePlaceholder(nil)
	if got, want := b.String(), "${1:x}"; got != want {
		t.Errorf("original = %q, want %q", got, want)
	}
	if got, want := c.String(), "${1:x}${2:}"; got != want {
		t.Errorf("clone = %q, want %q", got, want)
	}
	if c.TabStops() != 2 || b.TabStops() != 1 {
		t.Errorf("TabStops = %d, %d, want 2, 1", c.TabStops(), b.TabStops())
	}
}
