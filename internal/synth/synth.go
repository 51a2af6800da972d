// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synth synthesizes placeholder source text for values of
// resolved Kotlin types, and complete named argument lists for
// signatures.
//
// Synthesis never fails: a type that cannot be resolved, an enum without
// constants, or a class without a primary constructor degrades to a
// TODO() placeholder at that point of the value, and re-entering a
// constructor that is already being expanded yields
// TODO("skip recursive").
package synth

import (
	"slices"

	"github.com/orange-guo/fill-kotlin-arguments/model"
	"github.com/orange-guo/fill-kotlin-arguments/syntax"
)

// Placeholder values.
const (
	NotImplemented = `TODO()`
	SkipRecursive  = `TODO("skip recursive")`
	ImplementMe    = `TODO("Implement Me")`
)

// DefaultMaxDepth is the default bound on nested constructor expansion.
const DefaultMaxDepth = 16

// A Factory turns argument-list text into syntax nodes.
type Factory interface {
	ParseArgs(text string) (*syntax.ArgList, error)
}

// SyntaxFactory is the Factory backed by the syntax package.
type SyntaxFactory struct{}

func (SyntaxFactory) ParseArgs(text string) (*syntax.ArgList, error) {
	return syntax.ParseArgs(text)
}

// Options configures synthesis.
type Options struct {
	// Strings generates the contents of string literals.
	// If nil, strings are empty.
	Strings StringGenerator

	// MaxDepth bounds the nesting of constructor expansion; deeper
	// values are replaced by the recursion placeholder. Zero means
	// DefaultMaxDepth.
	MaxDepth int
}

// A State is the context threaded through one synthesis. It is a value:
// every recursive step derives a new State, and no State is modified
// after it is created.
type State struct {
	Factory Factory
	Session model.Session

	opts     Options
	visiting []string // qualified names of the callables being expanded
	depth    int
}

// NewState returns the state for synthesizing the arguments of the
// callable named fn.
func NewState(fn string, factory Factory, session model.Session, opts Options) State {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	st := State{Factory: factory, Session: session, opts: opts}
	if fn != "" {
		st.visiting = []string{fn}
	}
	return st
}

// With returns a copy of st with name appended to the visiting list.
func (st State) With(name string) State {
	st.visiting = append(slices.Clip(st.visiting), name)
	st.depth++
	return st
}

// Visiting returns the names being expanded, outermost first.
func (st State) Visiting() []string {
	return slices.Clone(st.visiting)
}

// Visited reports whether the callable named name is being expanded.
func (st State) Visited(name string) bool {
	return slices.Contains(st.visiting, name)
}

// Synthesize returns source text for a value of type t.
func Synthesize(t model.Type, st State) string {
	switch t.Kind {
	case model.Boolean:
		return "false"
	case model.Char:
		return "''"
	case model.String:
		return quote(st.strings()())
	case model.Double:
		return "0.0"
	case model.Float:
		return "0.0f"
	case model.Integer:
		return "0"
	case model.Array:
		return emptyArray(t)
	case model.Enum:
		return enumValue(t, st)
	case model.Function:
		return lambda(t)
	case model.NullableAny:
		return "null"
	case model.Class:
		return constructorCall(t, st)
	}
	return NotImplemented
}

func (st State) strings() StringGenerator {
	if st.opts.Strings == nil {
		return Empty
	}
	return st.opts.Strings
}

var primitiveArrays = map[string]string{
	"kotlin.BooleanArray": "booleanArrayOf()",
	"kotlin.CharArray":    "charArrayOf()",
	"kotlin.ByteArray":    "byteArrayOf()",
	"kotlin.ShortArray":   "shortArrayOf()",
	"kotlin.IntArray":     "intArrayOf()",
	"kotlin.LongArray":    "longArrayOf()",
	"kotlin.FloatArray":   "floatArrayOf()",
	"kotlin.DoubleArray":  "doubleArrayOf()",
	"kotlin.UByteArray":   "ubyteArrayOf()",
	"kotlin.UShortArray":  "ushortArrayOf()",
	"kotlin.UIntArray":    "uintArrayOf()",
	"kotlin.ULongArray":   "ulongArrayOf()",
}

// emptyArray returns an empty array of the element type of t, so that
// primitive arrays are not given a boxed Array<T>.
func emptyArray(t model.Type) string {
	if s, ok := primitiveArrays[t.Name]; ok {
		return s
	}
	return "emptyArray()"
}

func enumValue(t model.Type, st State) string {
	if st.Session == nil || t.Name == "" {
		return NotImplemented
	}
	entries, ok := st.Session.EnumEntries(t)
	if !ok || len(entries) == 0 {
		return NotImplemented
	}
	return t.Name + "." + entries[0]
}

func constructorCall(t model.Type, st State) string {
	if st.Session == nil {
		return NotImplemented
	}
	ctor, ok := st.Session.PrimaryConstructor(t)
	if !ok || ctor.Name == "" {
		return NotImplemented
	}
	if st.Visited(ctor.Name) || st.depth >= st.opts.MaxDepth {
		return SkipRecursive
	}
	list, ok := buildList(ctor, st)
	if !ok {
		return NotImplemented
	}
	return ctor.Name + list.Text()
}
