// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kotlin

import "strings"

// A scope resolves names as seen from a point in a file.
type scope struct {
	ix    *Index
	file  *File
	outer []*Class // enclosing classes, innermost last
}

// declScope returns the scope of the body of class c, or the file scope
// of f if c is nil.
func (ix *Index) declScope(f *File, c *Class) scope {
	var outer []*Class
	for ; c != nil; c = c.Outer {
		outer = append([]*Class{c}, outer...)
	}
	return scope{ix: ix, file: f, outer: outer}
}

// A classRef is a resolved classifier name: a declared class, or a
// builtin with a nil Class.
type classRef struct {
	Name  string
	Class *Class
}

// typeName resolves a possibly qualified classifier name.
func (s scope) typeName(name string) (classRef, bool) {
	parts := strings.Split(unquotePath(name), ".")
	if ref, ok := s.simpleType(parts[0]); ok {
		return s.nested(ref, parts[1:])
	}
	// A fully qualified name: the longest prefix naming a class,
	// followed by nested class names.
	for i := len(parts); i > 1; i-- {
		prefix := strings.Join(parts[:i], ".")
		if c := s.ix.classes[prefix]; c != nil {
			return s.nested(classRef{prefix, c}, parts[i:])
		}
		if isBuiltin(prefix) && i == len(parts) {
			return classRef{Name: prefix}, true
		}
	}
	return classRef{}, false
}

func (s scope) nested(ref classRef, rest []string) (classRef, bool) {
	for _, name := range rest {
		if ref.Class == nil {
			return classRef{}, false
		}
		c := ref.Class.Nested[name]
		if c == nil {
			return classRef{}, false
		}
		ref = classRef{c.Name, c}
	}
	return ref, true
}

// simpleType resolves a simple classifier name. Nested and enclosing
// classes come first, then explicit imports, the file's package, wildcard
// imports and the default imports.
func (s scope) simpleType(name string) (classRef, bool) {
	for i := len(s.outer) - 1; i >= 0; i-- {
		c := s.outer[i]
		if n := c.Nested[name]; n != nil {
			return classRef{n.Name, n}, true
		}
		if c.ShortName() == name {
			return classRef{c.Name, c}, true
		}
	}
	if s.file != nil {
		for _, imp := range s.file.Imports {
			if imp.Name() != name {
				continue
			}
			if c := s.ix.classes[imp.Path]; c != nil {
				return classRef{c.Name, c}, true
			}
			if isBuiltin(imp.Path) {
				return classRef{Name: imp.Path}, true
			}
		}
		if c := s.ix.classes[qualify(s.file.Package, name)]; c != nil {
			return classRef{c.Name, c}, true
		}
		for _, imp := range s.file.Imports {
			if !imp.Wildcard {
				continue
			}
			if c := s.ix.classes[imp.Path+"."+name]; c != nil {
				return classRef{c.Name, c}, true
			}
		}
	}
	if fqn, ok := builtins[name]; ok {
		return classRef{Name: fqn}, true
	}
	return classRef{}, false
}

// funcs returns the functions a simple callee name can refer to, from the
// innermost scope that declares any.
func (s scope) funcs(name string) []*Func {
	for i := len(s.outer) - 1; i >= 0; i-- {
		if fns := s.outer[i].Members[name]; len(fns) > 0 {
			return fns
		}
	}
	if s.file == nil {
		return nil
	}
	var fns []*Func
	for _, imp := range s.file.Imports {
		if !imp.Wildcard && imp.Name() == name {
			fns = append(fns, s.ix.funcs[imp.Path]...)
		}
	}
	if len(fns) > 0 {
		return fns
	}
	if fns := s.ix.funcs[qualify(s.file.Package, name)]; len(fns) > 0 {
		return fns
	}
	for _, imp := range s.file.Imports {
		if imp.Wildcard {
			fns = append(fns, s.ix.funcs[imp.Path+"."+name]...)
		}
	}
	return fns
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
