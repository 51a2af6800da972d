// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package merge inserts the missing arguments of a suggested argument
// list into the argument list of a call, and lays out the result.
//
// The engine works in phases over the text of the argument list, parsing
// it again after each one:
//
//  1. Arguments of the suggestion whose parameter is not yet supplied are
//     appended, one per parameter.
//  2. The list, and the argument lists nested in the inserted values, are
//     split one argument per line ([Splitter]).
//  3. A trailing comma is added when requested.
//  4. Qualified references in the inserted values are shortened
//     ([Shortener]).
//  5. The inserted values are presented as tab stops ([Surface]).
//
// The result is a single edit replacing the whole list.
package merge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/orange-guo/fill-kotlin-arguments/internal/diff"
	"github.com/orange-guo/fill-kotlin-arguments/syntax"
)

// ErrNothingToAdd is returned by Apply when the call already supplies every
// parameter of the suggestion.
var ErrNothingToAdd = errors.New("no arguments to add")

// Options are the user settings of the engine.
type Options struct {
	SeparateLines bool // put arguments on separate lines
	TrailingComma bool // add a trailing comma
	TabStops      bool // move the pointer to every inserted argument
}

// DefaultOptions returns the default settings.
func DefaultOptions() Options {
	return Options{SeparateLines: true, TrailingComma: false, TabStops: true}
}

// An Engine applies suggested argument lists. The capabilities are
// optional: a nil Splitter leaves the layout alone, a nil Shortener leaves
// references qualified, and a nil Surface means the fix is applied
// without an interactive editor.
type Engine struct {
	Options   Options
	Splitter  Splitter
	Shortener Shortener
	Surface   Surface
}

// Input describes one application of a suggestion.
type Input struct {
	Src  []byte          // file content
	List *syntax.ArgList // the call's argument list, positions into Src

	// Suggested is the complete suggested list, with positions into
	// SuggestedSrc.
	Suggested    *syntax.ArgList
	SuggestedSrc string

	// TrailingLambda reports whether the call passes a lambda after the
	// parentheses, which supplies the last parameter.
	TrailingLambda bool
}

// A Result is the outcome of Apply.
type Result struct {
	Edit     diff.Edit // replaces the argument list, parentheses included
	FirstNew int       // index of the first inserted argument
	Added    []string  // names of the inserted arguments
	Snippet  string    // the new list in snippet syntax, if presented on a Surface
}

// Apply merges in.Suggested into in.List.
func (e *Engine) Apply(in Input) (*Result, error) {
	if in.List == nil || in.Suggested == nil {
		return nil, fmt.Errorf("missing argument list")
	}
	missing := Missing(in.List, in.Suggested, in.TrailingLambda)
	if len(missing) == 0 {
		return nil, ErrNothingToAdd
	}

	res := &Result{FirstNew: len(in.List.Args)}
	var values []string
	for _, a := range missing {
		res.Added = append(res.Added, a.Name.Unquoted())
		values = append(values, strings.TrimSpace(in.SuggestedSrc[a.Start:a.Stop]))
	}

	text := insert(in.Src, in.List, values)
	indent := lineIndent(in.Src, in.List.Lparen)

	var err error
	if e.Options.SeparateLines && e.Splitter != nil {
		if text, err = e.split(text, indent, res.FirstNew); err != nil {
			return nil, err
		}
	}
	if e.Options.TrailingComma {
		if text, err = addTrailingCommas(text, res.FirstNew); err != nil {
			return nil, err
		}
	}
	if e.Shortener != nil {
		if text, err = shorten(text, res.FirstNew, e.Shortener); err != nil {
			return nil, err
		}
	}
	if e.Surface != nil && e.Options.TabStops {
		snip, err := template(text, res.FirstNew)
		if err != nil {
			return nil, err
		}
		res.Snippet = snip
		e.Surface.RunTemplate(in.List.Lparen, snip)
	}

	res.Edit = diff.Edit{Start: in.List.Pos(), End: in.List.End(), New: text}
	return res, nil
}

// Missing returns the arguments of suggested whose parameter is not
// supplied by actual. A parameter is supplied by an argument of the same
// name, by a positional argument at its index, or, for the last
// parameter, by a trailing lambda.
func Missing(actual, suggested *syntax.ArgList, trailingLambda bool) []*syntax.Arg {
	named := make(map[string]bool)
	for _, a := range actual.Args {
		if a.Name != nil {
			named[a.Name.Unquoted()] = true
		}
	}
	positional := actual.Positional()
	var missing []*syntax.Arg
	for i, a := range suggested.Args {
		switch {
		case a.Name == nil:
			continue
		case named[a.Name.Unquoted()]:
			continue
		case i < positional:
			continue
		case trailingLambda && i == len(suggested.Args)-1:
			continue
		}
		missing = append(missing, a)
	}
	return missing
}

// insert returns the text of list with values appended as new arguments.
func insert(src []byte, list *syntax.ArgList, values []string) string {
	joined := strings.Join(values, ", ")
	var b strings.Builder
	switch n := len(list.Args); {
	case n == 0:
		b.Write(src[list.Lparen : list.Lparen+1])
		b.WriteString(joined)
		b.Write(src[list.Lparen+1 : list.End()])
	case list.Args[n-1].Comma >= 0:
		// Preserve the trailing comma after the new arguments.
		at := list.Args[n-1].Comma + 1
		b.Write(src[list.Lparen:at])
		b.WriteString(" " + joined + ",")
		b.Write(src[at:list.End()])
	default:
		last := list.Args[n-1]
		at := last.Stop
		if last.LineComment {
			at = last.Value.End()
		}
		b.Write(src[list.Lparen:at])
		if at == last.Stop && last.LineComment {
			b.WriteString("\n")
		}
		b.WriteString(", " + joined)
		b.Write(src[at:list.End()])
	}
	return b.String()
}

// lineIndent returns the leading white space of the line containing
// offset.
func lineIndent(src []byte, offset int) string {
	start := offset
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := start
	for end < offset && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[start:end])
}

// newLists returns the argument lists nested level calls deep in the
// values of the arguments of list from index first on.
func newLists(list *syntax.ArgList, first, level int) []*syntax.ArgList {
	if level == 0 {
		return []*syntax.ArgList{list}
	}
	var lists []*syntax.ArgList
	for _, a := range list.Args[first:] {
		if call, ok := a.Value.(*syntax.CallExpr); ok {
			lists = append(lists, newLists(call.Args, 0, level-1)...)
		}
	}
	return lists
}

// allLists returns list and every list nested in its new arguments.
func allLists(list *syntax.ArgList, first int) []*syntax.ArgList {
	var all []*syntax.ArgList
	for level := 0; ; level++ {
		lists := newLists(list, first, level)
		if len(lists) == 0 {
			return all
		}
		all = append(all, lists...)
	}
}
