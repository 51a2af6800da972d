// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kotlin

import (
	"strings"

	"github.com/orange-guo/fill-kotlin-arguments/model"
)

// resolveType resolves the source text of a declared type.
// Type arguments are dropped; type parameters and unknown classes
// resolve to Unresolved types.
func (s scope) resolveType(text string) model.Type {
	text = stripTypeModifiers(strings.TrimSpace(text))
	if text == "" {
		return model.Type{Kind: model.Unresolved}
	}

	if inner, ok := parenthesized(text); ok {
		return s.resolveType(inner)
	}
	if arrow := topLevel(text, "->"); arrow >= 0 {
		return s.functionType(text[:arrow], text[arrow+2:])
	}
	if base, ok := strings.CutSuffix(text, "?"); ok {
		t := s.resolveType(base)
		t.Nullable = true
		if t.Kind == model.Class && t.Name == "kotlin.Any" {
			t = model.Type{Kind: model.NullableAny, Name: t.Name, Nullable: true}
		}
		return t
	}

	name := text
	if lt := topLevel(text, "<"); lt >= 0 {
		name = text[:lt]
	}
	name = compact(name)
	ref, ok := s.typeName(name)
	if !ok {
		return model.Type{Kind: model.Unresolved, Name: name}
	}
	if ref.Class == nil {
		kind, ok := builtinKinds[ref.Name]
		if !ok {
			kind = model.Class
		}
		return model.Type{Kind: kind, Name: ref.Name, Sym: builtinSym(ref.Name)}
	}
	kind := model.Class
	if ref.Class.Kind == KindEnum {
		kind = model.Enum
	}
	return model.Type{Kind: kind, Name: ref.Name, Sym: ref.Class}
}

// paramType resolves the type of a declared parameter. The type of a
// vararg parameter is the array of its element type.
func (s scope) paramType(p Param) model.Type {
	if !p.Vararg {
		return s.resolveType(p.Type)
	}
	elem := s.resolveType(p.Type)
	if array, ok := varargArrays[elem.Name]; ok && !elem.Nullable {
		return model.Type{Kind: model.Array, Name: array, Sym: builtinSym(array)}
	}
	return model.Type{Kind: model.Array, Name: "kotlin.Array", Sym: builtinSym("kotlin.Array")}
}

// functionType resolves (A, B) -> R, R.(A) -> R and their named-parameter
// forms. The receiver of an extension function type is dropped.
func (s scope) functionType(params, result string) model.Type {
	params = strings.TrimSpace(params)
	inner, ok := parenthesized(params)
	if !ok && strings.HasSuffix(params, ")") {
		if open := strings.LastIndex(params, ".("); open >= 0 {
			inner, ok = parenthesized(params[open+1:])
		}
	}
	if !ok {
		return model.Type{Kind: model.Unresolved}
	}
	res := s.resolveType(result)
	t := model.Type{Kind: model.Function, Result: &res}
	for _, p := range splitTopLevel(inner) {
		if colon := topLevel(p, ":"); colon >= 0 {
			p = p[colon+1:]
		}
		t.Params = append(t.Params, s.resolveType(p))
	}
	return t
}

// stripTypeModifiers removes leading annotations and the suspend
// modifier.
func stripTypeModifiers(text string) string {
	for {
		switch {
		case strings.HasPrefix(text, "suspend "):
			text = strings.TrimSpace(text[len("suspend"):])
		case strings.HasPrefix(text, "@"):
			end := 1
			for end < len(text) && (isIdentByte(text[end]) || text[end] == '.' || text[end] == ':') {
				end++
			}
			if end < len(text) && text[end] == '(' {
				close := matching(text, end)
				if close < 0 {
					return text
				}
				end = close + 1
			}
			text = strings.TrimSpace(text[end:])
		default:
			return text
		}
	}
}

// parenthesized returns the text inside s if s is entirely enclosed in
// one pair of parentheses.
func parenthesized(s string) (string, bool) {
	if !strings.HasPrefix(s, "(") || matching(s, 0) != len(s)-1 {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// matching returns the index of the bracket closing the one at s[open].
func matching(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(', '<', '[':
			depth++
		case ')', '>', ']':
			if s[i] == '>' && i > 0 && s[i-1] == '-' {
				continue
			}
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// topLevel returns the index of the first occurrence of sep in s outside
// any brackets, or -1.
func topLevel(s, sep string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		if depth == 0 && strings.HasPrefix(s[i:], sep) {
			return i
		}
		switch s[i] {
		case '(', '<', '[':
			depth++
		case ')', ']':
			depth--
		case '>':
			if i == 0 || s[i-1] != '-' {
				depth--
			}
		}
	}
	return -1
}

// splitTopLevel splits s at commas outside brackets. It returns nil for
// blank s.
func splitTopLevel(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	for {
		i := topLevel(s, ",")
		if i < 0 {
			return append(parts, s)
		}
		parts = append(parts, s[:i])
		s = s[i+1:]
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
