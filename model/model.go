// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model defines the read-only view of resolved Kotlin types and
// callables that the argument synthesizer consumes.
//
// Values of these types are produced by a host (see the internal/kotlin
// package for the tree-sitter based host); the synthesizer only classifies
// them and asks the host's [Session] for the details of class types.
package model

import (
	"strconv"
	"strings"
)

// Kind is the classification of a resolved type.
//
// The set is closed: every type a host produces falls into exactly one
// kind, and consumers dispatch on it with a single switch.
type Kind int

const (
	Unresolved  Kind = iota // class symbol or member scope could not be resolved
	Boolean                 // kotlin.Boolean
	Char                    // kotlin.Char
	String                  // kotlin.String or kotlin.CharSequence
	Double                  // kotlin.Double
	Float                   // kotlin.Float
	Integer                 // kotlin.Int, kotlin.Long, kotlin.Short
	Array                   // kotlin.Array<T> and the primitive arrays
	Enum                    // an enum class
	Function                // a function type, (A, B) -> R
	NullableAny             // kotlin.Any?
	Class                   // any other class type
)

var kindNames = [...]string{
	Unresolved:  "unresolved",
	Boolean:     "boolean",
	Char:        "char",
	String:      "string",
	Double:      "double",
	Float:       "float",
	Integer:     "integer",
	Array:       "array",
	Enum:        "enum",
	Function:    "function",
	NullableAny: "nullable-any",
	Class:       "class",
}

func (k Kind) String() string {
	if 0 <= int(k) && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// A Symbol is an opaque host handle for the declaration behind a class or
// enum type. Only the host that created it may interpret it.
type Symbol any

// Type is a resolved type.
type Type struct {
	Kind Kind

	// Name is the fully qualified name of the type's class,
	// e.g. "kotlin.Int" or "com.example.Color". It is empty for
	// function types and for unresolved types whose name is unknown.
	Name string

	Nullable bool

	// Params and Result describe a function type.
	Params []Type
	Result *Type

	// Sym is the host's handle for Class and Enum types.
	Sym Symbol
}

// ShortName returns the last segment of the type's qualified name.
func (t Type) ShortName() string {
	if i := strings.LastIndexByte(t.Name, '.'); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// String returns the Kotlin source form of t using fully qualified names.
func (t Type) String() string {
	var b strings.Builder
	writeType(&b, t)
	return b.String()
}

func writeType(b *strings.Builder, t Type) {
	if t.Kind == Function {
		if t.Nullable {
			b.WriteByte('(')
		}
		b.WriteByte('(')
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			writeType(b, p)
		}
		b.WriteString(") -> ")
		if t.Result != nil {
			writeType(b, *t.Result)
		} else {
			b.WriteString("kotlin.Unit")
		}
		if t.Nullable {
			b.WriteString(")?")
		}
		return
	}
	if t.Name == "" {
		b.WriteString("kotlin.Any")
	} else {
		b.WriteString(t.Name)
	}
	if t.Nullable {
		b.WriteByte('?')
	}
}

// A Param is a named, typed value parameter of a callable.
type Param struct {
	Name string
	Type Type

	// Vararg reports a vararg parameter; Type is then its array type.
	Vararg bool
}

// A Signature is a resolved function or constructor.
type Signature struct {
	// Name is the fully qualified name of the callable. For a
	// constructor it is the name of the class. Empty means the host could
	// not determine an identity for the callable.
	Name   string
	Params []Param
}

// A Session is the host's active semantic-analysis context. Class-level
// lookups are only valid while the session is live.
type Session interface {
	// PrimaryConstructor returns the primary constructor of a Class
	// type, or false if it has none or cannot be resolved.
	PrimaryConstructor(t Type) (*Signature, bool)

	// EnumEntries returns the constants of an Enum type in declaration
	// order, or false if its member scope cannot be resolved.
	EnumEntries(t Type) ([]string, bool)
}
