// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kotlin

import (
	"slices"
	"strings"

	"github.com/orange-guo/fill-kotlin-arguments/internal/diff"
)

// A shortener replaces qualified class references by simple names,
// importing the classes that are not yet visible in the file.
type shortener struct {
	s     scope
	added map[string]string // simple name to imported qualified name
}

func newShortener(ix *Index, f *File) *shortener {
	return &shortener{s: scope{ix: ix, file: f}, added: make(map[string]string)}
}

// Shorten returns the shortest form of the qualified name that denotes
// the same declaration in the file. It reports false if the name cannot
// be shortened: it names no known class, or every simple name it could be
// shortened to already denotes something else.
func (sh *shortener) Shorten(name string) (string, bool) {
	parts := strings.Split(name, ".")
	for i := len(parts) - 1; i >= 1; i-- {
		fqn := strings.Join(parts[:i+1], ".")
		if sh.s.ix.classes[fqn] == nil && !isBuiltin(fqn) {
			continue
		}
		simple := parts[i]
		short := strings.Join(parts[i:], ".")
		if got, ok := sh.added[simple]; ok {
			if got == fqn {
				return short, true
			}
			continue
		}
		ref, ok := sh.s.simpleType(simple)
		switch {
		case ok && ref.Name == fqn:
			return short, true
		case ok:
			// Taken by another class; an enclosing class may still
			// be importable.
			continue
		}
		sh.added[simple] = fqn
		return short, true
	}
	return "", false
}

// Imports returns the edits adding an import for every class Shorten
// made visible, in name order.
func (sh *shortener) Imports() []diff.Edit {
	if len(sh.added) == 0 {
		return nil
	}
	var paths []string
	for _, fqn := range sh.added {
		paths = append(paths, fqn)
	}
	slices.Sort(paths)
	var b strings.Builder
	for _, p := range paths {
		b.WriteString("import ")
		b.WriteString(p)
		b.WriteByte('\n')
	}
	text := b.String()

	f := sh.s.file
	switch {
	case f.ImportsEnd >= 0:
		if f.ImportsEnd == len(f.Src) && !endsWithNewline(f.Src) {
			text = "\n" + strings.TrimSuffix(text, "\n")
		}
		return []diff.Edit{{Start: f.ImportsEnd, End: f.ImportsEnd, New: text}}
	case f.PackageEnd >= 0:
		text = "\n" + text
		if f.PackageEnd == len(f.Src) && !endsWithNewline(f.Src) {
			text = "\n" + text
		}
		return []diff.Edit{{Start: f.PackageEnd, End: f.PackageEnd, New: text}}
	}
	return []diff.Edit{{Start: 0, End: 0, New: text + "\n"}}
}

func endsWithNewline(src []byte) bool {
	return len(src) > 0 && src[len(src)-1] == '\n'
}
