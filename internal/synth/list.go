// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"context"
	"errors"
	"strings"

	"github.com/orange-guo/fill-kotlin-arguments/model"
)

// ErrAnonymous is returned by BuildArgumentList for a callable without a
// qualified name, which cannot take part in recursion detection.
var ErrAnonymous = errors.New("callable has no qualified name")

// An Arg is one suggested named argument.
type Arg struct {
	Name  string // parameter name, unquoted
	Value string // synthesized value text
}

// A List is a suggested argument list, one Arg per parameter in
// declaration order.
type List []Arg

// Text returns l as a Kotlin argument list, e.g. (a = 0, b = "").
func (l List) Text() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, a := range l {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(QuoteName(a.Name))
		b.WriteString(" = ")
		b.WriteString(a.Value)
	}
	b.WriteByte(')')
	return b.String()
}

// Names returns the parameter names of l.
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, a := range l {
		names[i] = a.Name
	}
	return names
}

// BuildArgumentList synthesizes a value for every parameter of sig.
// Each value is synthesized with the name of sig added to the visiting
// list of st.
//
// It returns ErrAnonymous if sig has no name, and the context's error if
// ctx is done before every parameter has a value.
func BuildArgumentList(ctx context.Context, sig *model.Signature, st State) (List, error) {
	if sig.Name == "" {
		return nil, ErrAnonymous
	}
	inner := st.With(sig.Name)
	list := make(List, 0, len(sig.Params))
	for _, p := range sig.Params {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value := Synthesize(p.Type, inner)
		if p.Vararg {
			// A named vararg argument takes a spread array.
			value = "*" + value
		}
		list = append(list, Arg{Name: p.Name, Value: value})
	}
	return list, nil
}

// buildList is BuildArgumentList for nested constructor calls.
func buildList(sig *model.Signature, st State) (List, bool) {
	list, err := BuildArgumentList(context.Background(), sig, st)
	return list, err == nil
}
