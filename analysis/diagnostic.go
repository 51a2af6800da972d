// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysis defines the result types of an inspection: the
// diagnostics it reports and the fixes it proposes for them.
package analysis

import "github.com/orange-guo/fill-kotlin-arguments/internal/diff"

// A Diagnostic is a message associated with a source location or range.
//
// An inspection may return a variety of diagnostics; the optional Category,
// which should be a constant, may be used to classify them.
// It is primarily intended to make it easy to look up documentation.
//
// All positions are byte offsets into the file the diagnostic was
// reported for.
type Diagnostic struct {
	File     string
	Pos      int
	End      int    // optional
	Category string // optional
	Message  string

	// SuggestedFixes is an optional list of fixes to address the
	// problem described by the diagnostic. Each one represents
	// an alternative strategy; at most one may be applied.
	SuggestedFixes []SuggestedFix
}

// A SuggestedFix is a code change associated with a Diagnostic that a
// user can choose to apply to their code. Usually the SuggestedFix is
// meant to fix the issue flagged by the diagnostic.
//
// The TextEdits must not overlap, nor contain edits for other files.
type SuggestedFix struct {
	// A verb phrase describing the fix, to be shown to
	// a user trying to decide whether to accept it.
	//
	// Example: "Remove the surplus argument"
	Message   string
	TextEdits []TextEdit

	// Snippet, if non-empty, is the replacement text of the edit that
	// changes the argument list, in LSP snippet syntax, for surfaces
	// that can present tab stops.
	Snippet string
}

// A TextEdit represents the replacement of the code between Pos and End
// with the new text. Each TextEdit should apply to a single file.
// End should not be earlier in the file than Pos.
type TextEdit struct {
	// For a pure insertion, End may be set to Pos or left zero.
	Pos     int
	End     int
	NewText []byte
}

// Edits converts the text edits of f to diff edits.
func (f SuggestedFix) Edits() []diff.Edit {
	edits := make([]diff.Edit, len(f.TextEdits))
	for i, e := range f.TextEdits {
		edits[i] = diff.Edit{Start: e.Pos, End: max(e.End, e.Pos), New: string(e.NewText)}
	}
	return edits
}
