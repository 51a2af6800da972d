// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snippet implements the LSP snippet syntax used to present
// inserted argument values as tab stops.
package snippet

import (
	"fmt"
	"strings"
)

// A Builder is used to build an LSP snippet piecemeal.
// The zero value is ready to use. Do not copy a non-zero Builder.
type Builder struct {
	// currentTabStop is the index of the previous tab stop. The
	// next tab stop will be currentTabStop+1.
	currentTabStop int
	sb             strings.Builder
}

// Escape characters defined in https://microsoft.github.io/language-server-protocol/specifications/specification-current/#snippet_syntax
var replacer = strings.NewReplacer(
	`\`, `\\`,
	`}`, `\}`,
	`$`, `\$`,
)

// WriteText writes s, escaping any characters that have special meaning
// in snippets.
func (b *Builder) WriteText(s string) {
	replacer.WriteString(&b.sb, s)
}

// WritePlaceholder writes a tab stop and placeholder value to the Builder.
// The callback style allows for creating nested placeholders. To write an
// empty tab stop, provide a nil callback.
func (b *Builder) WritePlaceholder(fn func(*Builder)) {
	fmt.Fprintf(&b.sb, "${%d:", b.nextTabStop())
	if fn != nil {
		fn(b)
	}
	b.sb.WriteByte('}')
}

// WriteTabStop writes an empty tab stop, $N.
func (b *Builder) WriteTabStop() {
	fmt.Fprintf(&b.sb, "$%d", b.nextTabStop())
}

// WriteFinalTabstop marks the place where the cursor should be left once
// every tab stop has been visited.
func (b *Builder) WriteFinalTabstop() {
	fmt.Fprint(&b.sb, "$0")
}

// TabStops returns the number of tab stops written so far, not counting
// the final one.
func (b *Builder) TabStops() int {
	return b.currentTabStop
}

// String returns the snippet text.
func (b *Builder) String() string {
	return b.sb.String()
}

// Clone returns a copy of b.
func (b *Builder) Clone() *Builder {
	var clone Builder
	clone.sb.WriteString(b.String())
	clone.currentTabStop = b.currentTabStop
	return &clone
}

func (b *Builder) nextTabStop() int {
	b.currentTabStop++
	return b.currentTabStop
}
