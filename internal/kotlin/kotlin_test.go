// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kotlin_test

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/orange-guo/fill-kotlin-arguments/internal/diff"
	"github.com/orange-guo/fill-kotlin-arguments/internal/fillargs"
	"github.com/orange-guo/fill-kotlin-arguments/internal/kotlin"
)

// TestFixes runs the inspection over the archives in testdata.
//
// Each archive holds Kotlin files, a "diagnostics" file listing the
// expected problems of all files as file:line:col: message, and for every
// file X whose fixed content is checked, a file X.golden. A line of the
// archive comment starting with "options:" lists the options of the run,
// "nosplit" and "trailing-comma".
func TestFixes(t *testing.T) {
	archives, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) == 0 {
		t.Fatal("no test archives")
	}
	for _, archive := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(archive), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(archive)
			if err != nil {
				t.Fatal(err)
			}
			runArchive(t, ar)
		})
	}
}

func runArchive(t *testing.T, ar *txtar.Archive) {
	ctx := context.Background()
	opts := fillargs.DefaultOptions()
	for _, line := range strings.Split(string(ar.Comment), "\n") {
		list, ok := strings.CutPrefix(line, "options:")
		if !ok {
			continue
		}
		for _, opt := range strings.Fields(list) {
			switch opt {
			case "nosplit":
				opts.Merge.SeparateLines = false
			case "trailing-comma":
				opts.Merge.TrailingComma = true
			default:
				t.Fatalf("unknown option %q", opt)
			}
		}
	}

	golden := make(map[string]string)
	var wantDiags string
	var files []*kotlin.File
	for _, f := range ar.Files {
		switch {
		case f.Name == "diagnostics":
			wantDiags = string(f.Data)
		case strings.HasSuffix(f.Name, ".golden"):
			golden[strings.TrimSuffix(f.Name, ".golden")] = string(f.Data)
		default:
			kf, err := kotlin.Parse(ctx, f.Name, f.Data)
			if err != nil {
				t.Fatal(err)
			}
			files = append(files, kf)
		}
	}
	ix := kotlin.NewIndex(files...)

	var got strings.Builder
	for _, f := range ix.Files() {
		problems, err := fillargs.Diagnose(ctx, ix.View(f), opts)
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range problems {
			line, col := diff.LineCol(string(f.Src), p.Pos)
			fmt.Fprintf(&got, "%s:%d:%d: %s\n", f.Name, line, col, p.Message)
		}
	}
	if diff := cmp.Diff(wantDiags, got.String()); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}

	for name, want := range golden {
		f := ix.File(name)
		if f == nil {
			t.Fatalf("no file %s for golden content", name)
		}
		fixed, _, err := fillargs.FixAll(ctx, f.Src, ix.Opener(ctx, name), opts)
		if err != nil {
			t.Fatalf("FixAll(%s): %v", name, err)
		}
		if diff := cmp.Diff(want, string(fixed)); diff != "" {
			t.Errorf("fixed %s mismatch (-want +got):\n%s", name, diff)
		}

		// A fixed file has nothing left to report.
		refixed, n, err := fillargs.FixAll(ctx, fixed, ix.Opener(ctx, name), opts)
		if err != nil {
			t.Fatal(err)
		}
		if n != 0 || !bytes.Equal(refixed, fixed) {
			t.Errorf("second FixAll(%s) applied %d fixes", name, n)
		}
	}
}
