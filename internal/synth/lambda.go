// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/orange-guo/fill-kotlin-arguments/model"
)

// lambda returns a placeholder lambda for the function type t.
//
// A lambda of zero or one parameters relies on the implicit parameter;
// otherwise each parameter is declared with a name derived from its type
// and its fully qualified type, marked nullable when t itself is:
//
//	{ string: kotlin.String, int: kotlin.Int? -> TODO("Implement Me") }
func lambda(t model.Type) string {
	if len(t.Params) <= 1 {
		return "{ " + ImplementMe + " }"
	}
	var b strings.Builder
	b.WriteString("{ ")
	names := make(nameValidator)
	for i, p := range t.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(names.suggest(paramBaseName(p)))
		b.WriteString(": ")
		if t.Nullable {
			p.Nullable = true
		}
		b.WriteString(p.String())
	}
	b.WriteString(" -> ")
	b.WriteString(ImplementMe)
	b.WriteString(" }")
	return b.String()
}

// paramBaseName returns the name a lambda parameter of type t is derived
// from: the short name of its class, or a generic name for types without
// one.
func paramBaseName(t model.Type) string {
	switch {
	case t.Kind == model.Function:
		return "function"
	case t.Name == "":
		return "value"
	}
	return decapitalize(t.ShortName())
}

// A nameValidator remembers every name issued for one lambda.
type nameValidator map[string]bool

// suggest returns base, or base with the smallest numeric suffix that
// makes it unique, and records the result.
func (v nameValidator) suggest(base string) string {
	name := base
	for i := 1; v[name] || IsKeyword(name); i++ {
		name = base + strconv.Itoa(i)
	}
	v[name] = true
	return name
}

// decapitalize lowers the leading run of upper-case letters of s,
// keeping the last one of a longer run when it starts the next word:
// "Int" becomes "int", "URL" becomes "url", "HTTPServer" becomes
// "httpServer".
func decapitalize(s string) string {
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n > 1 && n < len(runes) && unicode.IsLetter(runes[n]) {
		n--
	}
	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// hard keywords, which cannot be used as identifiers without backticks.
var keywords = map[string]bool{
	"as": true, "break": true, "class": true, "continue": true, "do": true,
	"else": true, "false": true, "for": true, "fun": true, "if": true,
	"in": true, "interface": true, "is": true, "null": true, "object": true,
	"package": true, "return": true, "super": true, "this": true,
	"throw": true, "true": true, "try": true, "typealias": true,
	"typeof": true, "val": true, "var": true, "when": true, "while": true,
}

// IsKeyword reports whether name is a hard keyword.
func IsKeyword(name string) bool {
	return keywords[name]
}

// QuoteName returns name in backticks if it is not a plain identifier.
func QuoteName(name string) string {
	if IsKeyword(name) || !isIdent(name) {
		return "`" + name + "`"
	}
	return name
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
