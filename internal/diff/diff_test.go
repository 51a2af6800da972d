// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff_test

import (
	"testing"

	"github.com/orange-guo/fill-kotlin-arguments/internal/diff"
)

func TestApply(t *testing.T) {
	for _, test := range []struct {
		src   string
		edits []diff.Edit
		want  string // "!" => error
	}{
		{"foo(a = 1)", nil, "foo(a = 1)"},
		{"foo(a = 1)", []diff.Edit{{Start: 3, End: 10, New: "(a = 1, b = 0)"}}, "foo(a = 1, b = 0)"},
		{"abc", []diff.Edit{{Start: 3, End: 3, New: "d"}, {Start: 0, End: 0, New: "z"}}, "zabcd"},
		// same-offset insertions keep their order
		{"abc", []diff.Edit{{Start: 1, End: 1, New: "X"}, {Start: 1, End: 1, New: "Y"}}, "aXYbc"},
		{"abc", []diff.Edit{{Start: 2, End: 4, New: ""}}, "!"},
		{"abcdef", []diff.Edit{{Start: 1, End: 3, New: ""}, {Start: 2, End: 4, New: ""}}, "!"},
	} {
		got, err := diff.Apply(test.src, test.edits)
		if err != nil {
			got = "!"
		}
		if got != test.want {
			t.Errorf("Apply(%q, %v) = %q, want %q", test.src, test.edits, got, test.want)
		}
	}
}

func TestMerge(t *testing.T) {
	imp := diff.Edit{Start: 0, End: 0, New: "import a.B\n"}
	call := diff.Edit{Start: 10, End: 20, New: "(x = 0)"}
	inner := diff.Edit{Start: 12, End: 15, New: "(y = 0)"}

	for _, test := range []struct {
		name string
		x, y []diff.Edit
		want int // number of merged edits; -1 => conflict
	}{
		{"independent", []diff.Edit{call}, []diff.Edit{imp}, 2},
		{"coalesced", []diff.Edit{imp, call}, []diff.Edit{imp}, 2},
		{"nested", []diff.Edit{call}, []diff.Edit{inner}, -1},
		{"colocated insertions", []diff.Edit{imp}, []diff.Edit{{Start: 0, End: 0, New: "import c.D\n"}}, -1},
		{"adjacent", []diff.Edit{call}, []diff.Edit{{Start: 20, End: 25, New: ""}}, 2},
	} {
		got, ok := diff.Merge(test.x, test.y)
		n := len(got)
		if !ok {
			n = -1
		}
		if n != test.want {
			t.Errorf("%s: Merge(%v, %v) = %v, %t; want %d edits", test.name, test.x, test.y, got, ok, test.want)
		}
	}
}

func TestLineCol(t *testing.T) {
	src := "package a\n\nfun f() {\n    g()\n}\n"
	for _, test := range []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{9, 1, 10},
		{10, 2, 1},
		{25, 4, 5},
		{1000, 6, 1},
	} {
		line, col := diff.LineCol(src, test.offset)
		if line != test.line || col != test.col {
			t.Errorf("LineCol(%d) = %d:%d, want %d:%d", test.offset, line, col, test.line, test.col)
		}
	}
}
