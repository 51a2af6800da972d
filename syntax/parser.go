// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tskotlin "github.com/smacker/go-tree-sitter/kotlin"
)

// ErrNotArgList is returned when the source at the requested offset does
// not start with an opening parenthesis.
var ErrNotArgList = errors.New("not an argument list")

// callee is prepended to an argument list parsed on its own, making it
// the argument list of a call expression statement.
const callee = "_f"

// parse parses src as a Kotlin source file.
func parse(src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tskotlin.GetLanguage())
	return parser.ParseCtx(context.Background(), nil, src)
}

// ParseArgs parses text consisting of a single argument list, such as
// `(a = 1, b = "")`, optionally surrounded by white space.
func ParseArgs(text string) (*ArgList, error) {
	trimmed := strings.TrimLeft(text, " \t\r\n\f")
	if !strings.HasPrefix(trimmed, "(") {
		return nil, ErrNotArgList
	}
	lead := len(text) - len(trimmed)
	src := []byte(callee + trimmed)
	tree, err := parse(src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	b := &builder{src: src, base: len(callee) - lead}
	root := tree.RootNode()
	if e := b.firstError(root); e != nil {
		return nil, b.errorAt(e)
	}
	list := statementArgs(root)
	if list == nil {
		return nil, fmt.Errorf("offset %d: unexpected text after argument list", lead)
	}
	return b.build(list)
}

// statementArgs returns the value_arguments node of a file consisting of
// a single call of the form callee(...), or nil.
func statementArgs(root *sitter.Node) *sitter.Node {
	if root.NamedChildCount() != 1 {
		return nil
	}
	call := root.NamedChild(0)
	if call.Type() != "call_expression" || call.NamedChildCount() != 2 {
		return nil
	}
	if fn := call.NamedChild(0); fn.Type() != "simple_identifier" || fn.StartByte() != 0 {
		return nil
	}
	suffix := call.NamedChild(1)
	if suffix.Type() != "call_suffix" || suffix.NamedChildCount() != 1 {
		return nil
	}
	if args := suffix.NamedChild(0); args.Type() == "value_arguments" {
		return args
	}
	return nil
}

// ParseArgList parses the Kotlin source file src and returns the argument
// list whose opening parenthesis is at src[offset].
func ParseArgList(src []byte, offset int) (*ArgList, error) {
	if offset < 0 || offset >= len(src) || src[offset] != '(' {
		return nil, ErrNotArgList
	}
	tree, err := parse(src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	n := tree.RootNode()
	for n != nil && !(n.Type() == "value_arguments" && int(n.StartByte()) == offset) {
		var next *sitter.Node
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if int(c.StartByte()) <= offset && offset < int(c.EndByte()) {
				next = c
				break
			}
		}
		n = next
	}
	if n == nil {
		return nil, ErrNotArgList
	}
	return FromNode(src, n)
}

// FromNode returns the argument list of the value_arguments node n of a
// tree parsed from src. It fails if the list contains a syntax error.
func FromNode(src []byte, n *sitter.Node) (*ArgList, error) {
	if n.Type() != "value_arguments" {
		return nil, ErrNotArgList
	}
	b := &builder{src: src}
	if e := b.firstError(n); e != nil {
		return nil, b.errorAt(e)
	}
	return b.build(n)
}

// A builder converts tree-sitter nodes to syntax nodes. Positions are
// byte offsets into src less base.
type builder struct {
	src  []byte
	base int
	err  error
}

func (b *builder) pos(n *sitter.Node) int { return int(n.StartByte()) - b.base }
func (b *builder) end(n *sitter.Node) int { return int(n.EndByte()) - b.base }

func (b *builder) text(n *sitter.Node) string {
	return string(b.src[n.StartByte():n.EndByte()])
}

func (b *builder) errorf(n *sitter.Node, format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf("offset %d: %s", b.pos(n), fmt.Sprintf(format, args...))
	}
}

func (b *builder) errorAt(n *sitter.Node) error {
	if n.IsMissing() {
		return fmt.Errorf("offset %d: missing %s", b.pos(n), n.Type())
	}
	return fmt.Errorf("offset %d: syntax error", b.pos(n))
}

// firstError returns the first error or missing node under n. The empty
// character literal '' is accepted.
func (b *builder) firstError(n *sitter.Node) *sitter.Node {
	switch {
	case n.IsError(), n.IsMissing():
		return n
	case !n.HasError():
		return nil
	case n.Type() == "character_literal" && b.text(n) == "''":
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if e := b.firstError(n.Child(i)); e != nil {
			return e
		}
	}
	return nil
}

func (b *builder) build(n *sitter.Node) (*ArgList, error) {
	list := b.argList(n)
	if b.err != nil {
		return nil, b.err
	}
	return list, nil
}

// argList converts a value_arguments node. The children of the node
// between two separators are an argument and the comments around it.
func (b *builder) argList(n *sitter.Node) *ArgList {
	list := &ArgList{Lparen: b.pos(n), Rparen: b.end(n) - 1, Tail: Span{-1, -1}}
	var elem []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "(":
			list.Lparen = b.pos(c)
		case ",", ")":
			b.element(list, elem, c)
			elem = elem[:0]
			if c.Type() == ")" {
				list.Rparen = b.pos(c)
			}
		default:
			elem = append(elem, c)
		}
	}
	return list
}

// element adds the argument made of the nodes elem, followed by the
// separator sep, to list. Comments alone before the closing parenthesis
// are the list's tail.
func (b *builder) element(list *ArgList, elem []*sitter.Node, sep *sitter.Node) {
	closing := sep.Type() == ")"
	if len(elem) == 0 {
		if !closing {
			b.errorf(sep, "missing argument")
		}
		return
	}
	var arg *sitter.Node
	for _, c := range elem {
		switch {
		case c.Type() == "value_argument" && arg == nil:
			arg = c
		case c.Type() == "value_argument":
			b.errorf(c, "missing separator")
		case !c.IsExtra():
			b.errorf(c, "unexpected %s", c.Type())
		}
	}
	first, last := elem[0], elem[len(elem)-1]
	if arg == nil {
		if !closing {
			b.errorf(sep, "missing argument")
			return
		}
		list.Tail = Span{b.pos(first), b.end(last)}
		return
	}
	a := &Arg{
		Start:       b.pos(first),
		Stop:        b.end(last),
		Comma:       -1,
		LineComment: last.Type() == "line_comment",
	}
	if !closing {
		a.Comma = b.pos(sep)
	}
	b.valueArgument(a, arg)
	list.Args = append(list.Args, a)
}

// valueArgument fills in the name and value of a from the value_argument
// node n: [annotation] [name =] [*] value.
func (b *builder) valueArgument(a *Arg, n *sitter.Node) {
	var kids []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.IsExtra() || c.Type() == "annotation" {
			continue
		}
		kids = append(kids, c)
	}
	if len(kids) >= 2 && kids[0].Type() == "simple_identifier" && kids[1].Type() == "=" {
		a.Name = b.ident(kids[0])
		kids = kids[2:]
	}
	if len(kids) > 0 && kids[0].Type() == "*" {
		a.Spread = true
		kids = kids[1:]
	}
	if len(kids) != 1 {
		b.errorf(n, "malformed argument")
		return
	}
	v := kids[0]
	if v.Type() == "spread_expression" && v.NamedChildCount() == 1 {
		a.Spread = true
		v = v.NamedChild(0)
	}
	a.Value = b.expr(v)
}

func (b *builder) ident(n *sitter.Node) *Ident {
	return &Ident{NamePos: b.pos(n), Name: b.text(n)}
}

// expr converts an expression node.
func (b *builder) expr(n *sitter.Node) Expr {
	switch n.Type() {
	case "integer_literal", "hex_literal", "bin_literal", "long_literal", "unsigned_literal":
		return b.lit(n, INT)
	case "real_literal":
		return b.lit(n, FLOAT)
	case "string_literal", "line_string_literal", "multi_line_string_literal":
		return b.lit(n, STRING)
	case "character_literal":
		return b.lit(n, CHAR)
	case "boolean_literal", "null", "null_literal":
		return b.lit(n, IDENT)
	case "simple_identifier", "navigation_expression":
		if r := b.ref(n); r != nil {
			return r
		}
	case "call_expression":
		if call := b.call(n); call != nil {
			return call
		}
	case "lambda_literal":
		if lit := b.lambda(n); lit != nil {
			return lit
		}
	}
	return b.raw(n)
}

func (b *builder) lit(n *sitter.Node, kind LitKind) *BasicLit {
	return &BasicLit{ValuePos: b.pos(n), Kind: kind, Value: b.text(n)}
}

// ref returns the reference n denotes if n is a chain of simple names
// joined by dots, or nil.
func (b *builder) ref(n *sitter.Node) *Ref {
	switch n.Type() {
	case "simple_identifier":
		return &Ref{Parts: []*Ident{b.ident(n)}}
	case "navigation_expression":
		if n.NamedChildCount() != 2 {
			return nil
		}
		suffix := n.NamedChild(1)
		if suffix.Type() != "navigation_suffix" || suffix.ChildCount() != 2 ||
			suffix.Child(0).Type() != "." || suffix.Child(1).Type() != "simple_identifier" {
			return nil
		}
		r := b.ref(n.NamedChild(0))
		if r == nil {
			return nil
		}
		r.Parts = append(r.Parts, b.ident(suffix.Child(1)))
		return r
	}
	return nil
}

// call converts a call_expression whose callee is a reference and whose
// suffix holds an argument list, with the trailing lambda of an
// enclosing call_expression if any. It returns nil for other calls.
func (b *builder) call(n *sitter.Node) *CallExpr {
	if n.NamedChildCount() != 2 {
		return nil
	}
	fun, suffix := n.NamedChild(0), n.NamedChild(1)
	if suffix.Type() != "call_suffix" {
		return nil
	}
	var args, lambda, typeArgs *sitter.Node
	for i := 0; i < int(suffix.NamedChildCount()); i++ {
		switch c := suffix.NamedChild(i); c.Type() {
		case "type_arguments":
			typeArgs = c
		case "value_arguments":
			args = c
		case "annotated_lambda":
			lambda = c
		default:
			return nil
		}
	}
	if args == nil {
		// f(...) { ... } nests the call with the argument list inside a
		// call_expression whose suffix is the lambda.
		if typeArgs != nil || lambda == nil || fun.Type() != "call_expression" {
			return nil
		}
		inner := b.call(fun)
		if inner == nil || inner.Lambda != nil {
			return nil
		}
		if inner.Lambda = b.trailing(lambda); inner.Lambda == nil {
			return nil
		}
		return inner
	}
	ref := b.ref(fun)
	if ref == nil {
		return nil
	}
	call := &CallExpr{Fun: ref, TypeArgs: Span{-1, -1}, Args: b.argList(args)}
	if typeArgs != nil {
		call.TypeArgs = Span{b.pos(typeArgs), b.end(typeArgs)}
	}
	if lambda != nil {
		if call.Lambda = b.trailing(lambda); call.Lambda == nil {
			return nil
		}
	}
	return call
}

// trailing converts an annotated_lambda without annotations or label.
func (b *builder) trailing(n *sitter.Node) *LambdaLit {
	if n.NamedChildCount() != 1 || n.NamedChild(0).Type() != "lambda_literal" {
		return nil
	}
	return b.lambda(n.NamedChild(0))
}

// lambda converts a lambda_literal whose parameters are names with
// optional types. It returns nil for destructuring parameters.
func (b *builder) lambda(n *sitter.Node) *LambdaLit {
	lit := &LambdaLit{Lbrace: b.pos(n), Arrow: -1, Rbrace: b.end(n) - 1}
	for i := 0; i < int(n.ChildCount()); i++ {
		switch c := n.Child(i); c.Type() {
		case "lambda_parameters":
			for j := 0; j < int(c.NamedChildCount()); j++ {
				p := b.lambdaParam(c.NamedChild(j))
				if p == nil {
					return nil
				}
				lit.Params = append(lit.Params, p)
			}
		case "->":
			lit.Arrow = b.pos(c)
		case "statements":
			lit.Body = b.raw(c)
		case "}":
			lit.Rbrace = b.pos(c)
		}
	}
	if lit.Body == nil {
		lit.Body = &RawExpr{From: lit.Rbrace, To: lit.Rbrace}
	}
	return lit
}

func (b *builder) lambdaParam(n *sitter.Node) *LambdaParam {
	if n.Type() != "variable_declaration" || n.NamedChildCount() == 0 {
		return nil
	}
	name := n.NamedChild(0)
	if name.Type() != "simple_identifier" {
		return nil
	}
	p := &LambdaParam{Name: b.ident(name)}
	if n.NamedChildCount() > 1 {
		p.Type = b.raw(n.NamedChild(1))
	}
	return p
}

// raw returns n as an unmodeled expression, recording the qualified
// references inside it.
func (b *builder) raw(n *sitter.Node) *RawExpr {
	x := &RawExpr{From: b.pos(n), To: b.end(n)}
	b.refs(n, &x.Refs)
	return x
}

// refs appends the qualified references under n to refs: maximal dotted
// chains of names in expressions, and dotted types.
func (b *builder) refs(n *sitter.Node, refs *[]*Ref) {
	switch n.Type() {
	case "character_literal", "line_comment", "multiline_comment":
		return
	case "navigation_expression":
		if r := b.ref(n); r != nil {
			*refs = append(*refs, r)
			return
		}
	case "user_type":
		var parts []*Ident
		for i := 0; i < int(n.NamedChildCount()); i++ {
			switch c := n.NamedChild(i); c.Type() {
			case "type_identifier":
				parts = append(parts, b.ident(c))
			case "type_arguments":
				if len(parts) > 1 {
					*refs = append(*refs, &Ref{Parts: parts})
				}
				parts = nil
				b.refs(c, refs)
			}
		}
		if len(parts) > 1 {
			*refs = append(*refs, &Ref{Parts: parts})
		}
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.refs(n.NamedChild(i), refs)
	}
}
