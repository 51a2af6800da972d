// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merge_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/orange-guo/fill-kotlin-arguments/internal/diff"
	"github.com/orange-guo/fill-kotlin-arguments/internal/merge"
	"github.com/orange-guo/fill-kotlin-arguments/syntax"
)

type mapShortener map[string]string

func (m mapShortener) Shorten(name string) (string, bool) {
	short, ok := m[name]
	return short, ok
}

type recordingSurface struct {
	offset  int
	snippet string
}

func (s *recordingSurface) RunTemplate(offset int, snippet string) {
	s.offset, s.snippet = offset, snippet
}

// firstArgList returns the first value argument list of src, skipping
// parameter lists.
func firstArgList(t *testing.T, src string) *syntax.ArgList {
	t.Helper()
	for i := 0; i < len(src); i++ {
		if src[i] != '(' {
			continue
		}
		list, err := syntax.ParseArgList([]byte(src), i)
		if errors.Is(err, syntax.ErrNotArgList) {
			continue
		}
		if err != nil {
			t.Fatal(err)
		}
		return list
	}
	t.Fatalf("no argument list in %q", src)
	return nil
}

// apply merges suggestion into the first argument list of src and
// returns the edited source.
func apply(t *testing.T, e *merge.Engine, src, suggestion string, trailingLambda bool) (string, *merge.Result) {
	t.Helper()
	list := firstArgList(t, src)
	sug, err := syntax.ParseArgs(suggestion)
	if err != nil {
		t.Fatal(err)
	}
	res, err := e.Apply(merge.Input{
		Src:            []byte(src),
		List:           list,
		Suggested:      sug,
		SuggestedSrc:   suggestion,
		TrailingLambda: trailingLambda,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got, err := diff.Apply(src, []diff.Edit{res.Edit})
	if err != nil {
		t.Fatal(err)
	}
	return got, res
}

func defaultEngine() *merge.Engine {
	return &merge.Engine{Options: merge.DefaultOptions(), Splitter: merge.LineSplitter{}}
}

func TestApply(t *testing.T) {
	inline := merge.Options{}
	for _, test := range []struct {
		name       string
		opts       merge.Options
		src        string
		suggestion string
		lambda     bool
		want       string
		added      []string
	}{
		{
			name:       "empty call",
			opts:       merge.DefaultOptions(),
			src:        "fun main() {\n    f()\n}\n",
			suggestion: `(a = 0, b = "")`,
			want:       "fun main() {\n    f(\n        a = 0,\n        b = \"\"\n    )\n}\n",
			added:      []string{"a", "b"},
		},
		{
			name:       "named argument kept",
			opts:       merge.DefaultOptions(),
			src:        "val v = g(x = 1)\n",
			suggestion: `(x = 0, y = false)`,
			want:       "val v = g(\n    x = 1,\n    y = false\n)\n",
			added:      []string{"y"},
		},
		{
			name:       "inline",
			opts:       inline,
			src:        "val v = g(x = 1)\n",
			suggestion: `(x = 0, y = false)`,
			want:       "val v = g(x = 1, y = false)\n",
			added:      []string{"y"},
		},
		{
			name:       "positional arguments",
			opts:       inline,
			src:        "h(1)",
			suggestion: `(a = 0, b = "")`,
			want:       `h(1, b = "")`,
			added:      []string{"b"},
		},
		{
			name:       "trailing lambda",
			opts:       inline,
			src:        "run(1) { }",
			suggestion: `(a = 0, b = 0, block = { TODO("Implement Me") })`,
			lambda:     true,
			want:       "run(1, b = 0) { }",
			added:      []string{"b"},
		},
		{
			name:       "quoted names",
			opts:       inline,
			src:        "k(`in` = 1)",
			suggestion: "(`in` = 0, out = 0)",
			want:       "k(`in` = 1, out = 0)",
			added:      []string{"out"},
		},
		{
			name:       "existing trailing comma",
			opts:       merge.DefaultOptions(),
			src:        "g(\n    x = 1,\n)",
			suggestion: `(x = 0, y = false)`,
			want:       "g(\n    x = 1,\n    y = false,\n)",
			added:      []string{"y"},
		},
		{
			name:       "added trailing comma",
			opts:       merge.Options{SeparateLines: true, TrailingComma: true},
			src:        "g(x = 1)",
			suggestion: `(x = 0, y = false)`,
			want:       "g(\n    x = 1,\n    y = false,\n)",
			added:      []string{"y"},
		},
		{
			name:       "single argument stays on its line",
			opts:       merge.DefaultOptions(),
			src:        "g()",
			suggestion: `(x = 0)`,
			want:       "g(x = 0)",
			added:      []string{"x"},
		},
		{
			name:       "comments",
			opts:       merge.DefaultOptions(),
			src:        "g(/* first */ x = 1, /* end */)",
			suggestion: `(x = 0, y = false)`,
			want:       "g(\n    /* first */ x = 1,\n    y = false,\n    /* end */\n)",
			added:      []string{"y"},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			e := &merge.Engine{Options: test.opts, Splitter: merge.LineSplitter{}}
			got, res := apply(t, e, test.src, test.suggestion, test.lambda)
			if got != test.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, test.want)
			}
			if diff := cmp.Diff(test.added, res.Added); diff != "" {
				t.Errorf("Added mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNestedLayoutAndShortening(t *testing.T) {
	e := defaultEngine()
	e.Shortener = mapShortener{
		"com.example.Node":      "Node",
		"com.example.Color.RED": "Color.RED",
		"kotlin.Int":            "Int",
	}
	src := "fun t() {\n    f()\n}\n"
	suggestion := `(node = com.example.Node(value = 0, next = TODO("skip recursive")), c = com.example.Color.RED, l = { int: kotlin.Int, int1: kotlin.Int -> TODO("Implement Me") })`
	got, res := apply(t, e, src, suggestion, false)
	want := `fun t() {
    f(
        node = Node(
            value = 0,
            next = TODO("skip recursive")
        ),
        c = Color.RED,
        l = { int: Int, int1: Int -> TODO("Implement Me") }
    )
}
`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if res.FirstNew != 0 {
		t.Errorf("FirstNew = %d, want 0", res.FirstNew)
	}
}

func TestExistingArgumentsNotShortened(t *testing.T) {
	e := &merge.Engine{Shortener: mapShortener{"com.example.Color.RED": "Color.RED"}}
	got, _ := apply(t, e, "g(c = com.example.Color.RED)", "(c = com.example.Color.RED, d = com.example.Color.RED)", false)
	if want := "g(c = com.example.Color.RED, d = Color.RED)"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestTabStops(t *testing.T) {
	surface := new(recordingSurface)
	e := defaultEngine()
	e.Surface = surface
	src := "val v = g(x = 1)\n"
	_, res := apply(t, e, src, `(x = 0, y = false, z = "")`, false)

	want := "(\n    x = 1,\n    y = ${1:false},\n    z = ${2:\"\"}\n)"
	if res.Snippet != want {
		t.Errorf("Snippet = %q, want %q", res.Snippet, want)
	}
	if surface.snippet != want || surface.offset != strings.IndexByte(src, '(') {
		t.Errorf("surface got (%d, %q), want (%d, %q)", surface.offset, surface.snippet, strings.IndexByte(src, '('), want)
	}

	// Without the option, nothing is presented.
	surface = new(recordingSurface)
	e.Surface = surface
	e.Options.TabStops = false
	_, res = apply(t, e, src, `(x = 0, y = false)`, false)
	if res.Snippet != "" || surface.snippet != "" {
		t.Errorf("tab stops presented with TabStops unset")
	}
}

func TestHeadless(t *testing.T) {
	e := defaultEngine()
	_, res := apply(t, e, "g()", `(x = 0, y = false)`, false)
	if res.Snippet != "" {
		t.Errorf("Snippet = %q without a surface", res.Snippet)
	}
}

func TestNoSplitter(t *testing.T) {
	e := &merge.Engine{Options: merge.DefaultOptions()}
	got, _ := apply(t, e, "g()", `(x = 0, y = false)`, false)
	if want := "g(x = 0, y = false)"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestNothingToAdd(t *testing.T) {
	src := "g(x = 1, y = true)"
	list, _ := syntax.ParseArgList([]byte(src), 1)
	sug, _ := syntax.ParseArgs("(x = 0, y = false)")
	_, err := defaultEngine().Apply(merge.Input{Src: []byte(src), List: list, Suggested: sug, SuggestedSrc: "(x = 0, y = false)"})
	if !errors.Is(err, merge.ErrNothingToAdd) {
		t.Errorf("Apply = %v, want ErrNothingToAdd", err)
	}
}

func TestNoDuplicates(t *testing.T) {
	suggestion := `(a = 0, b = "", c = false, d = 0.0)`
	for _, src := range []string{"f()", "f(a = 1)", "f(b = \"x\", d = 1.0)", "f(d = 2.0, a = 2, c = true)"} {
		got, _ := apply(t, defaultEngine(), src, suggestion, false)
		list, err := syntax.ParseArgs(got[1:])
		if err != nil {
			t.Fatalf("result %q does not parse: %v", got, err)
		}
		count := make(map[string]int)
		for _, name := range list.Names() {
			count[name]++
		}
		want := map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}
		if diff := cmp.Diff(want, count); diff != "" {
			t.Errorf("%s: names mismatch (-want +got):\n%s", src, diff)
		}
	}
}
