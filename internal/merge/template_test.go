// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merge

import "testing"

func TestTemplateEmptyChar(t *testing.T) {
	got, err := template("(a = 1, c = '', d = 2)", 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := "(a = 1, c = ${1:''}, d = ${2:2})"; got != want {
		t.Errorf("template = %q, want %q", got, want)
	}
}

func TestLineIndent(t *testing.T) {
	src := []byte("class A {\n\tfun f() {\n\t    g(1)\n\t}\n}")
	for offset, want := range map[int]string{
		0:                               "",
		len("class A {\n\tfun f() {\n\t    g"): "\t    ",
		len("class A {\n\tfun"):               "\t",
	} {
		if got := lineIndent(src, offset); got != want {
			t.Errorf("lineIndent(%d) = %q, want %q", offset, got, want)
		}
	}
}
