// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kotlin

import "github.com/orange-guo/fill-kotlin-arguments/syntax"

// A ClassKind is the kind of a classifier declaration.
type ClassKind int

const (
	KindClass ClassKind = iota
	KindInterface
	KindObject
	KindEnum
	KindAnnotation
)

var classKindNames = [...]string{
	KindClass:      "class",
	KindInterface:  "interface",
	KindObject:     "object",
	KindEnum:       "enum class",
	KindAnnotation: "annotation class",
}

func (k ClassKind) String() string { return classKindNames[k] }

// A File is a parsed Kotlin source file. It records the declarations and
// argument lists the inspection needs; the syntax tree itself is not kept.
type File struct {
	Name    string
	Src     []byte
	Package string // "" for the root package
	Imports []Import

	Classes []*Class // top-level classifiers
	Funcs   []*Func  // top-level functions
	Calls   []*CallSite

	// PackageEnd and ImportsEnd are the offsets just after the line of
	// the package header and of the last import, or -1.
	PackageEnd int
	ImportsEnd int

	HasErrors bool // the parser recovered from syntax errors
}

// An Import is an import directive.
type Import struct {
	Path     string // qualified name, without ".*"
	Alias    string // "as" name, or ""
	Wildcard bool
}

// Name returns the simple name the import introduces, or "" for a
// wildcard import.
func (imp Import) Name() string {
	switch {
	case imp.Wildcard:
		return ""
	case imp.Alias != "":
		return imp.Alias
	}
	return lastSegment(imp.Path)
}

// A Class is a class, interface, object or enum class declaration.
type Class struct {
	Name     string // fully qualified
	Kind     ClassKind
	Abstract bool // abstract or sealed

	// Primary lists the parameters of the primary constructor;
	// HasPrimary reports whether one is declared.
	Primary    []Param
	HasPrimary bool

	Entries []string // enum constants, in declaration order

	Members map[string][]*Func // member and companion functions by name
	Nested  map[string]*Class  // nested classifiers by simple name
	Outer   *Class             // enclosing class, or nil

	file *File
}

// ShortName returns the simple name of the class.
func (c *Class) ShortName() string { return lastSegment(c.Name) }

// A Func is a named function declaration.
type Func struct {
	Name      string // fully qualified; members are qualified by their class
	Params    []Param
	Owner     *Class // declaring class, or nil for a top-level function
	Extension bool   // declared with a receiver type

	file *File
}

// A Param is a declared value parameter.
type Param struct {
	Name    string // unquoted
	Type    string // source text of the declared type
	Vararg  bool
	Default bool // has a default value
}

// A CallSite is an argument list of the file.
type CallSite struct {
	List *syntax.ArgList

	// InCall reports whether the list belongs to a call expression;
	// Callee is then the callee expression with white space removed.
	InCall         bool
	Callee         string
	TrailingLambda bool

	// Scope lists the enclosing class declarations, innermost last.
	Scope []*Class
}
