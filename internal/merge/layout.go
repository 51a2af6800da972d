// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merge

import (
	"strings"

	"github.com/orange-guo/fill-kotlin-arguments/internal/diff"
	"github.com/orange-guo/fill-kotlin-arguments/syntax"
)

// A Splitter puts the arguments of a list on separate lines.
type Splitter interface {
	// SplitLines returns the edits to src that put each argument of
	// list on its own line, given the indentation of the line on which
	// the list starts. It returns no edits if the list cannot be split.
	SplitLines(src string, list *syntax.ArgList, indent string) []diff.Edit
}

// DefaultUnit is the indentation unit of a LineSplitter with none set.
const DefaultUnit = "    "

// A LineSplitter splits a list by replacing the white space around its
// separators. Arguments are indented one Unit deeper than the line of
// the opening parenthesis; the closing parenthesis goes on a line of its
// own.
type LineSplitter struct {
	Unit string
}

// SplitLines implements Splitter. Lists of fewer than two arguments, and
// lists in which an argument other than the last ends with a // comment,
// are left alone.
func (s LineSplitter) SplitLines(src string, list *syntax.ArgList, indent string) []diff.Edit {
	if len(list.Args) < 2 {
		return nil
	}
	unit := s.Unit
	if unit == "" {
		unit = DefaultUnit
	}
	inner := indent + unit

	items := make([]syntax.Span, 0, len(list.Args)+1)
	for i, a := range list.Args {
		if a.LineComment && (i < len(list.Args)-1 || a.Comma >= 0) {
			return nil
		}
		items = append(items, syntax.Span{From: a.Start, To: a.Stop})
	}
	if list.Tail.From >= 0 {
		items = append(items, list.Tail)
	}

	edits := []diff.Edit{{
		Start: list.Lparen + len("("),
		End:   items[0].From,
		New:   "\n" + inner,
	}}
	for i := 1; i < len(items); i++ {
		pos, end := items[i-1].To, items[i].From
		sep := "\n"
		if strings.IndexByte(src[pos:end], ',') >= 0 {
			sep = ",\n"
		}
		edits = append(edits, diff.Edit{Start: pos, End: end, New: sep + inner})
	}
	last := items[len(items)-1].To
	suffix := "\n" + indent
	if strings.IndexByte(src[last:list.Rparen], ',') >= 0 {
		suffix = ",\n" + indent
	}
	edits = append(edits, diff.Edit{Start: last, End: list.Rparen, New: suffix})
	return edits
}

// split applies the splitter to the list in text and to the lists
// nested in its arguments from index first on, outermost first, so that
// nested lists are indented relative to their new lines.
func (e *Engine) split(text, indent string, first int) (string, error) {
	for level := 0; ; level++ {
		list, err := syntax.ParseArgs(text)
		if err != nil {
			return "", err
		}
		lists := newLists(list, first, level)
		if len(lists) == 0 {
			return text, nil
		}
		var edits []diff.Edit
		for _, l := range lists {
			edits = append(edits, e.Splitter.SplitLines(text, l, indentAt(text, l.Lparen, indent))...)
		}
		if text, err = diff.Apply(text, edits); err != nil {
			return "", err
		}
	}
}

// indentAt returns the indentation of the line of text containing
// offset; base is the indentation of the first line.
func indentAt(text string, offset int, base string) string {
	if strings.LastIndexByte(text[:offset], '\n') < 0 {
		return base
	}
	return lineIndent([]byte(text), offset)
}

// addTrailingCommas adds a separator after the last argument of the list
// in text, and of the lists nested in its arguments from first on, where
// there is none.
func addTrailingCommas(text string, first int) (string, error) {
	list, err := syntax.ParseArgs(text)
	if err != nil {
		return "", err
	}
	var edits []diff.Edit
	for _, l := range allLists(list, first) {
		if len(l.Args) == 0 || l.HasTrailingComma() {
			continue
		}
		last := l.Args[len(l.Args)-1]
		at := last.Stop
		if last.LineComment {
			at = last.Value.End()
		}
		edits = append(edits, diff.Edit{Start: at, End: at, New: ","})
	}
	return diff.Apply(text, edits)
}
