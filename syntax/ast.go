// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax declares the nodes of a Kotlin value argument list and
// builds them from tree-sitter parse trees of Kotlin source.
//
// Only the shapes that calls and synthesized argument values take are
// modeled precisely: literals, (qualified) references, calls with their
// argument lists and trailing lambdas, and lambda literals. Any other
// expression is kept as a [RawExpr] covering its source extent, with the
// qualified references inside it still recorded.
//
// All positions are byte offsets into the source the list was parsed from.
package syntax

import (
	"fmt"
	"strings"
)

// A Node is any node of an argument-list tree.
type Node interface {
	Pos() int // offset of first byte belonging to the node
	End() int // offset of first byte immediately after the node
}

// An Expr is an argument value expression.
type Expr interface {
	Node
	exprNode()
}

// An ArgList is a parenthesized value argument list.
type ArgList struct {
	Lparen int    // position of "("
	Args   []*Arg // arguments in source order
	Rparen int    // position of ")"

	// Tail is the extent of comments between the last separator (or
	// the opening parenthesis) and the closing parenthesis; Tail.From
	// is -1 if there are none.
	Tail Span
}

// A Span is a half-open range of offsets.
type Span struct {
	From, To int
}

// An Arg is one argument of an ArgList.
type Arg struct {
	Start, Stop int    // extent, including comments, excluding separators
	Name        *Ident // argument name, or nil for a positional argument
	Spread      bool   // *array
	Value       Expr   // argument value
	Comma       int    // position of the following ",", or -1

	// LineComment reports whether the argument ends with a // comment,
	// so that nothing may follow it on the same line.
	LineComment bool
}

// A LitKind is the kind of a BasicLit.
type LitKind int

const (
	INT    LitKind = iota // 0, 0x1F, 1_000L, 1u
	FLOAT                 // 0.0, 1e3, 0.0f
	STRING                // "abc", """raw"""
	CHAR                  // 'a', ''
	IDENT                 // true, false, null
)

var litNames = [...]string{
	INT:    "INT",
	FLOAT:  "FLOAT",
	STRING: "STRING",
	CHAR:   "CHAR",
	IDENT:  "IDENT",
}

func (k LitKind) String() string {
	if 0 <= int(k) && int(k) < len(litNames) {
		return litNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", int(k))
}

// An Ident is a simple name. Quoted names keep their backticks.
type Ident struct {
	NamePos int
	Name    string
}

type (
	// A BasicLit is a literal of basic type, or one of the keywords
	// true, false and null.
	BasicLit struct {
		ValuePos int
		Kind     LitKind
		Value    string
	}

	// A Ref is a simple or dot-qualified reference such as x or
	// kotlin.collections.List.
	Ref struct {
		Parts []*Ident
	}

	// A CallExpr is a call with a parenthesized argument list and an
	// optional trailing lambda.
	CallExpr struct {
		Fun      *Ref
		TypeArgs Span // extent of <...> type arguments; From is -1 if absent
		Args     *ArgList
		Lambda   *LambdaLit // trailing lambda, or nil
	}

	// A LambdaLit is a lambda literal { a: A, b -> body }.
	LambdaLit struct {
		Lbrace int
		Params []*LambdaParam
		Arrow  int      // position of "->", or -1
		Body   *RawExpr // statements between the arrow (or brace) and "}"
		Rbrace int
	}

	// A RawExpr is an expression the parser does not model.
	RawExpr struct {
		From, To int
		Refs     []*Ref // qualified references found inside, in order
	}
)

// A LambdaParam is a lambda parameter with an optional type.
type LambdaParam struct {
	Name *Ident
	Type *RawExpr // type annotation, or nil
}

func (l *ArgList) Pos() int { return l.Lparen }
func (l *ArgList) End() int { return l.Rparen + 1 }

// HasTrailingComma reports whether the last argument is followed by a
// separator.
func (l *ArgList) HasTrailingComma() bool {
	return len(l.Args) > 0 && l.Args[len(l.Args)-1].Comma >= 0
}

// Names returns the names of the named arguments of l.
func (l *ArgList) Names() []string {
	var names []string
	for _, a := range l.Args {
		if a.Name != nil {
			names = append(names, a.Name.Name)
		}
	}
	return names
}

// Positional returns the number of positional arguments that precede the
// first named argument.
func (l *ArgList) Positional() int {
	n := 0
	for _, a := range l.Args {
		if a.Name != nil {
			break
		}
		n++
	}
	return n
}

func (a *Arg) Pos() int { return a.Start }
func (a *Arg) End() int { return a.Stop }

func (id *Ident) Pos() int { return id.NamePos }
func (id *Ident) End() int { return id.NamePos + len(id.Name) }

// Unquoted returns the name without enclosing backticks.
func (id *Ident) Unquoted() string {
	if len(id.Name) >= 2 && id.Name[0] == '`' && id.Name[len(id.Name)-1] == '`' {
		return id.Name[1 : len(id.Name)-1]
	}
	return id.Name
}

func (x *BasicLit) Pos() int { return x.ValuePos }
func (x *BasicLit) End() int { return x.ValuePos + len(x.Value) }

func (x *Ref) Pos() int { return x.Parts[0].Pos() }
func (x *Ref) End() int { return x.Parts[len(x.Parts)-1].End() }

// Name returns the dotted name of the reference.
func (x *Ref) Name() string {
	if len(x.Parts) == 1 {
		return x.Parts[0].Name
	}
	names := make([]string, len(x.Parts))
	for i, p := range x.Parts {
		names[i] = p.Name
	}
	return strings.Join(names, ".")
}

// Qualified reports whether the reference has more than one segment.
func (x *Ref) Qualified() bool { return len(x.Parts) > 1 }

func (x *CallExpr) Pos() int { return x.Fun.Pos() }
func (x *CallExpr) End() int {
	if x.Lambda != nil {
		return x.Lambda.End()
	}
	return x.Args.End()
}

func (x *LambdaLit) Pos() int { return x.Lbrace }
func (x *LambdaLit) End() int { return x.Rbrace + 1 }

func (x *RawExpr) Pos() int { return x.From }
func (x *RawExpr) End() int { return x.To }

func (p *LambdaParam) Pos() int { return p.Name.Pos() }
func (p *LambdaParam) End() int {
	if p.Type != nil {
		return p.Type.End()
	}
	return p.Name.End()
}

func (*BasicLit) exprNode()  {}
func (*Ref) exprNode()       {}
func (*CallExpr) exprNode()  {}
func (*LambdaLit) exprNode() {}
func (*RawExpr) exprNode()   {}

// Text returns the source text of n.
func Text(src []byte, n Node) string {
	return string(src[n.Pos():n.End()])
}
