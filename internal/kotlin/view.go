// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kotlin

import (
	"context"
	"strings"

	"github.com/orange-guo/fill-kotlin-arguments/internal/fillargs"
	"github.com/orange-guo/fill-kotlin-arguments/model"
	"github.com/orange-guo/fill-kotlin-arguments/syntax"
)

// A View is an indexed file seen by the inspection. It implements
// [fillargs.File].
type View struct {
	ix    *Index
	file  *File
	sites map[int]*CallSite // by Lparen
}

var _ fillargs.File = (*View)(nil)

// View returns the inspection's view of f, which must belong to ix.
func (ix *Index) View(f *File) *View {
	v := &View{ix: ix, file: f, sites: make(map[int]*CallSite, len(f.Calls))}
	for _, site := range f.Calls {
		v.sites[site.List.Lparen] = site
	}
	return v
}

// Opener returns a [fillargs.Opener] that reparses the file name with new
// content and views it in ix updated with the result.
func (ix *Index) Opener(ctx context.Context, name string) fillargs.Opener {
	return func(src []byte) (fillargs.File, error) {
		f, err := Parse(ctx, name, src)
		if err != nil {
			return nil, err
		}
		next := ix.Replace(f)
		return next.View(f), nil
	}
}

func (v *View) Name() string { return v.file.Name }
func (v *View) Src() []byte  { return v.file.Src }

func (v *View) Calls() []fillargs.Call {
	calls := make([]fillargs.Call, len(v.file.Calls))
	for i, site := range v.file.Calls {
		calls[i] = fillargs.Call{
			List:           site.List,
			InCall:         site.InCall,
			TrailingLambda: site.TrailingLambda,
			Callee:         site.Callee,
		}
	}
	return calls
}

func (v *View) Session() model.Session { return session{v.ix} }

func (v *View) NewShortener() fillargs.Shortener {
	return newShortener(v.ix, v.file)
}

// Resolve returns the signature of the function or constructor a call
// refers to. The callee must resolve to exactly one declaration whose
// parameters are compatible with the supplied arguments.
func (v *View) Resolve(c fillargs.Call) (*model.Signature, bool) {
	site := v.sites[c.List.Lparen]
	if site == nil || !site.InCall {
		return nil, false
	}
	s := scope{ix: v.ix, file: v.file, outer: site.Scope}
	var match *model.Signature
	n := 0
	for _, cand := range v.candidates(s, site.Callee) {
		if !compatible(cand.params, site.List, site.TrailingLambda) {
			continue
		}
		n++
		if n > 1 {
			return nil, false
		}
		match = v.ix.signature(cand)
	}
	return match, n == 1
}

// A candidate is a callable a callee may refer to.
type candidate struct {
	name   string
	params []Param
	file   *File
	scope  *Class // class whose body declares the parameter types
}

func ctorCandidate(c *Class) (candidate, bool) {
	if c.Kind != KindClass || c.Abstract {
		return candidate{}, false
	}
	// Without a primary constructor, only the implicit one with no
	// parameters is known.
	return candidate{name: c.Name, params: c.Primary, file: c.file, scope: c}, true
}

func funcCandidates(fns []*Func) []candidate {
	var cands []candidate
	for _, fn := range fns {
		if fn.Extension {
			continue
		}
		cands = append(cands, candidate{name: fn.Name, params: fn.Params, file: fn.file, scope: fn.Owner})
	}
	return cands
}

// candidates returns the declarations callee may name. Qualified callees
// are resolved by their longest qualifier that names a class: what
// follows is a nested class or a member of an object or companion.
func (v *View) candidates(s scope, callee string) []candidate {
	callee = unquotePath(callee)
	if rest, ok := strings.CutPrefix(callee, "this."); ok {
		if len(s.outer) == 0 || strings.Contains(rest, ".") {
			return nil
		}
		return funcCandidates(s.outer[len(s.outer)-1].Members[rest])
	}
	if !strings.Contains(callee, ".") {
		var cands []candidate
		if ref, ok := s.simpleType(callee); ok && ref.Class != nil {
			if cand, ok := ctorCandidate(ref.Class); ok {
				cands = append(cands, cand)
			}
		}
		return append(cands, funcCandidates(s.funcs(callee))...)
	}

	i := strings.LastIndexByte(callee, '.')
	qualifier, name := callee[:i], callee[i+1:]
	if ref, ok := s.typeName(qualifier); ok {
		if ref.Class == nil {
			return nil
		}
		if n := ref.Class.Nested[name]; n != nil {
			if cand, ok := ctorCandidate(n); ok {
				return []candidate{cand}
			}
			return nil
		}
		return funcCandidates(ref.Class.Members[name])
	}
	// A package-qualified top-level function or class.
	if c := v.ix.classes[callee]; c != nil {
		if cand, ok := ctorCandidate(c); ok {
			return []candidate{cand}
		}
		return nil
	}
	return funcCandidates(v.ix.funcs[callee])
}

// compatible reports whether the arguments of list can bind to params:
// every named argument names a parameter not already bound by a leading
// positional argument, and there are not more positional arguments than
// parameters.
func compatible(params []Param, list *syntax.ArgList, trailingLambda bool) bool {
	vararg := false
	for _, p := range params {
		vararg = vararg || p.Vararg
	}
	positional := list.Positional()
	bound := positional
	if trailingLambda {
		bound++
	}
	if !vararg && bound > len(params) {
		return false
	}
	for _, a := range list.Args[positional:] {
		if a.Name == nil {
			continue // positional after named; left to the compiler
		}
		name := a.Name.Unquoted()
		found := false
		for i, p := range params {
			if p.Name == name {
				found = vararg || i >= positional
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// signature resolves the parameter types of cand in its declaring scope.
func (ix *Index) signature(cand candidate) *model.Signature {
	s := ix.declScope(cand.file, cand.scope)
	sig := &model.Signature{Name: cand.name}
	for _, p := range cand.params {
		sig.Params = append(sig.Params, model.Param{
			Name:   p.Name,
			Type:   s.paramType(p),
			Vararg: p.Vararg,
		})
	}
	return sig
}

// session implements [model.Session] over an index.
type session struct {
	ix *Index
}

func (s session) PrimaryConstructor(t model.Type) (*model.Signature, bool) {
	switch sym := t.Sym.(type) {
	case *Class:
		cand, ok := ctorCandidate(sym)
		if !ok {
			return nil, false
		}
		return s.ix.signature(cand), true
	case builtinSym:
		if sym == "kotlin.Any" {
			return &model.Signature{Name: "kotlin.Any"}, true
		}
	}
	return nil, false
}

func (s session) EnumEntries(t model.Type) ([]string, bool) {
	c, ok := t.Sym.(*Class)
	if !ok || c.Kind != KindEnum {
		return nil, false
	}
	return c.Entries, true
}
