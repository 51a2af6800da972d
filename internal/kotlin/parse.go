// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kotlin is a host for the inspection that understands Kotlin
// source files well enough to resolve calls: it parses files with
// tree-sitter, indexes their declarations, resolves callees and declared
// types by the scoping rules of imports and packages, and shortens
// qualified references.
package kotlin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
	tskotlin "github.com/smacker/go-tree-sitter/kotlin"

	"github.com/orange-guo/fill-kotlin-arguments/syntax"
)

// ErrNotKotlin is returned for files without a Kotlin extension.
var ErrNotKotlin = errors.New("not a Kotlin source file")

// IsKotlin reports whether name has a Kotlin source extension.
func IsKotlin(name string) bool {
	switch filepath.Ext(name) {
	case ".kt", ".kts":
		return true
	}
	return false
}

// Parse parses the Kotlin source file name with content src.
//
// Syntax errors do not make Parse fail: the parser recovers, and
// declarations and argument lists outside the damaged region are still
// recorded. Argument lists that cannot be parsed are skipped.
func Parse(ctx context.Context, name string, src []byte) (*File, error) {
	if !IsKotlin(name) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotKotlin)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(tskotlin.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse of %s failed: %w", name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("%s: tree-sitter returned nil root node", name)
	}
	f := &File{
		Name:       name,
		Src:        src,
		PackageEnd: -1,
		ImportsEnd: -1,
		HasErrors:  root.HasError(),
	}
	w := &walker{f: f, src: src}
	w.walk(root)
	if w.skipped > 0 {
		slog.Debug("skipped unparsable argument lists", slog.String("file", name), slog.Int("count", w.skipped))
	}
	return f, nil
}

// A walker records the declarations and argument lists of a tree.
type walker struct {
	f       *File
	src     []byte
	outer   []*Class // enclosing classes, innermost last
	inFunc  int      // depth of function bodies
	skipped int
}

func (w *walker) text(n *sitter.Node) string {
	return n.Content(w.src)
}

func (w *walker) walkChildren(n *sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		w.walk(n.Child(i))
	}
}

func (w *walker) walk(n *sitter.Node) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "package_header":
		w.f.Package = w.qualifiedName(n)
		w.f.PackageEnd = w.lineEnd(w.codeEnd(n))
		return

	case "import_header":
		if imp, ok := parseImport(w.text(n)); ok {
			w.f.Imports = append(w.f.Imports, imp)
		}
		w.f.ImportsEnd = w.lineEnd(w.codeEnd(n))
		return

	case "class_declaration", "object_declaration":
		c := w.class(n)
		if c == nil {
			break
		}
		w.outer = append(w.outer, c)
		w.walkChildren(n)
		w.outer = w.outer[:len(w.outer)-1]
		return

	case "companion_object":
		// Companion members are called through the class name, or
		// unqualified inside the class: record them on the class.
		if len(w.outer) > 0 {
			w.outer = append(w.outer, w.outer[len(w.outer)-1])
			w.walkChildren(n)
			w.outer = w.outer[:len(w.outer)-1]
			return
		}

	case "function_declaration":
		w.function(n)
		w.inFunc++
		w.walkChildren(n)
		w.inFunc--
		return

	case "value_arguments":
		w.call(n)
	}
	w.walkChildren(n)
}

// qualifiedName returns the dotted identifier of a package header.
func (w *walker) qualifiedName(n *sitter.Node) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "identifier" {
			return compact(w.text(c))
		}
	}
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(w.text(n)), "package"))
	return compact(strings.TrimSuffix(text, ";"))
}

// parseImport parses the text of an import directive.
func parseImport(text string) (Import, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ";")
	text, ok := strings.CutPrefix(text, "import")
	if !ok {
		return Import{}, false
	}
	var imp Import
	if path, alias, ok := strings.Cut(text, " as "); ok {
		imp.Alias = strings.Trim(strings.TrimSpace(alias), "`")
		text = path
	}
	path := compact(text)
	if p, ok := strings.CutSuffix(path, ".*"); ok {
		imp.Wildcard = true
		path = p
	}
	imp.Path = unquotePath(path)
	return imp, imp.Path != ""
}

// codeEnd returns the end of n without the trailing white space a
// statement node may include.
func (w *walker) codeEnd(n *sitter.Node) int {
	start, end := int(n.StartByte()), int(n.EndByte())
	for end > start && isSpace(w.src[end-1]) {
		end--
	}
	return end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// lineEnd returns the offset after the end of the line containing offset.
func (w *walker) lineEnd(offset int) int {
	for offset < len(w.src) && w.src[offset] != '\n' {
		offset++
	}
	if offset < len(w.src) {
		offset++
	}
	return offset
}

func (w *walker) qualify(name string) string {
	if len(w.outer) > 0 {
		return w.outer[len(w.outer)-1].Name + "." + name
	}
	if w.f.Package != "" {
		return w.f.Package + "." + name
	}
	return name
}

// class records a classifier declaration. Local classes are not
// recorded, since nothing outside their function can call them.
func (w *walker) class(n *sitter.Node) *Class {
	if w.inFunc > 0 {
		return nil
	}
	c := &Class{
		Members: make(map[string][]*Func),
		Nested:  make(map[string]*Class),
		file:    w.f,
	}
	if n.Type() == "object_declaration" {
		c.Kind = KindObject
	}
	var name string
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "modifiers":
			mods := strings.Fields(w.text(child))
			for _, m := range mods {
				switch m {
				case "enum":
					c.Kind = KindEnum
				case "annotation":
					c.Kind = KindAnnotation
				case "abstract", "sealed":
					c.Abstract = true
				}
			}
		case "enum":
			c.Kind = KindEnum
		case "interface":
			c.Kind = KindInterface
		case "type_identifier", "simple_identifier":
			if name == "" {
				name = strings.Trim(w.text(child), "`")
			}
		case "primary_constructor":
			c.HasPrimary = true
			c.Primary = w.classParams(child)
		case "enum_class_body":
			c.Entries = w.enumEntries(child)
		}
	}
	if name == "" {
		return nil
	}
	c.Name = w.qualify(name)
	if len(w.outer) > 0 {
		outer := w.outer[len(w.outer)-1]
		c.Outer = outer
		outer.Nested[name] = c
	} else {
		w.f.Classes = append(w.f.Classes, c)
	}
	return c
}

// classParams reads the class parameters of a primary constructor. The
// grammar may or may not wrap them in a class_parameters node.
func (w *walker) classParams(n *sitter.Node) []Param {
	var params []Param
	for i := 0; i < int(n.NamedChildCount()); i++ {
		switch c := n.NamedChild(i); c.Type() {
		case "class_parameter":
			params = append(params, w.param(c))
		case "class_parameters":
			params = append(params, w.classParams(c)...)
		}
	}
	return params
}

// param reads a parameter declaration: modifiers, a name, a colon, the
// type, and for a class parameter an optional default value.
func (w *walker) param(n *sitter.Node) Param {
	var p Param
	typeStart, typeEnd := -1, int(n.EndByte())
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "modifiers", "parameter_modifiers":
			if strings.Contains(w.text(c), "vararg") {
				p.Vararg = true
			}
		case "simple_identifier":
			if p.Name == "" && typeStart < 0 {
				p.Name = strings.Trim(w.text(c), "`")
			}
		case ":":
			if typeStart < 0 {
				typeStart = int(c.EndByte())
			}
		case "=":
			p.Default = true
			typeEnd = int(c.StartByte())
		}
	}
	if typeStart >= 0 && typeStart <= typeEnd {
		p.Type = strings.TrimSpace(string(w.src[typeStart:typeEnd]))
	}
	return p
}

// functionParams reads function_value_parameters, in which modifiers and
// default values are siblings of the parameters.
func (w *walker) functionParams(n *sitter.Node) []Param {
	var params []Param
	vararg := false
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "parameter_modifiers":
			vararg = strings.Contains(w.text(c), "vararg")
		case "parameter":
			p := w.param(c)
			p.Vararg = p.Vararg || vararg
			params = append(params, p)
			vararg = false
		case "=":
			if len(params) > 0 {
				params[len(params)-1].Default = true
			}
		}
	}
	return params
}

func (w *walker) enumEntries(n *sitter.Node) []string {
	var entries []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		entry := n.NamedChild(i)
		if entry.Type() != "enum_entry" {
			continue
		}
		for j := 0; j < int(entry.NamedChildCount()); j++ {
			if id := entry.NamedChild(j); id.Type() == "simple_identifier" {
				entries = append(entries, strings.Trim(w.text(id), "`"))
				break
			}
		}
	}
	return entries
}

// function records a top-level or member function declaration.
func (w *walker) function(n *sitter.Node) {
	if w.inFunc > 0 {
		return
	}
	fn := &Func{file: w.f}
	var name string
	sawParams := false
	for i := 0; i < int(n.ChildCount()) && !sawParams; i++ {
		c := n.Child(i)
		switch c.Type() {
		case ".":
			fn.Extension = true
		case "simple_identifier":
			name = strings.Trim(w.text(c), "`")
		case "function_value_parameters":
			fn.Params = w.functionParams(c)
			sawParams = true
		}
	}
	if name == "" || !sawParams {
		return
	}
	fn.Name = w.qualify(name)
	if len(w.outer) > 0 {
		owner := w.outer[len(w.outer)-1]
		fn.Owner = owner
		owner.Members[name] = append(owner.Members[name], fn)
	} else {
		w.f.Funcs = append(w.f.Funcs, fn)
	}
}

// call records a value argument list.
func (w *walker) call(n *sitter.Node) {
	list, err := syntax.FromNode(w.src, n)
	if err != nil {
		w.skipped++
		return
	}
	site := &CallSite{List: list, Scope: append([]*Class(nil), w.outer...)}
	if suffix := n.Parent(); suffix != nil && suffix.Type() == "call_suffix" {
		if call := suffix.Parent(); call != nil && call.Type() == "call_expression" && call.ChildCount() > 0 {
			site.InCall = true
			site.Callee = compact(w.text(call.Child(0)))
			site.TrailingLambda = hasLambda(suffix) || trailingLambda(call)
		}
	}
	w.f.Calls = append(w.f.Calls, site)
}

// trailingLambda reports whether call is the callee of a call_expression
// whose suffix is a lambda, as in f(x) { ... }.
func trailingLambda(call *sitter.Node) bool {
	outer := call.Parent()
	if outer == nil || outer.Type() != "call_expression" || outer.ChildCount() < 2 {
		return false
	}
	if !outer.Child(0).Equal(call) {
		return false
	}
	for i := 1; i < int(outer.ChildCount()); i++ {
		if c := outer.Child(i); c.Type() == "call_suffix" && hasLambda(c) {
			return true
		}
	}
	return false
}

func hasLambda(suffix *sitter.Node) bool {
	for i := 0; i < int(suffix.ChildCount()); i++ {
		if suffix.Child(i).Type() == "annotated_lambda" {
			return true
		}
	}
	return false
}

// compact removes white space from s.
func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// unquotePath removes backticks from the segments of a qualified name.
func unquotePath(s string) string {
	return strings.ReplaceAll(s, "`", "")
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
