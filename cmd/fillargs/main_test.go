// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"golang.org/x/tools/txtar"

	"github.com/orange-guo/fill-kotlin-arguments/internal/diff"
	"github.com/orange-guo/fill-kotlin-arguments/internal/fillargs"
	"github.com/orange-guo/fill-kotlin-arguments/internal/settings"
)

const project = `
-- a.kt --
package demo

class Point(val x: Int, val y: Int)

fun main() {
    val p = Point(x = 1)
}
-- a.kt.golden --
package demo

class Point(val x: Int, val y: Int)

fun main() {
    val p = Point(
        x = 1,
        y = 0
    )
}
-- .gradle/cache.kt --
package broken

fun f() { g(
`

// setupProject writes the files of project, other than the golden
// ones, to a temporary directory and makes it the working directory.
func setupProject(t *testing.T) *txtar.Archive {
	t.Helper()
	ar := txtar.Parse([]byte(project))
	dir := t.TempDir()
	for _, f := range ar.Files {
		if strings.HasSuffix(f.Name, ".golden") {
			continue
		}
		name := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(name), 0o777); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(name, f.Data, 0o666); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
	return ar
}

func golden(t *testing.T, ar *txtar.Archive, name string) string {
	t.Helper()
	for _, f := range ar.Files {
		if f.Name == name+".golden" {
			return string(f.Data)
		}
	}
	t.Fatalf("no golden file for %s", name)
	return ""
}

// run executes the command line args and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, flags := range []*pflag.FlagSet{rootCmd.PersistentFlags(), fixCmd.Flags(), watchCmd.Flags()} {
		flags.VisitAll(func(f *pflag.Flag) {
			if s, ok := f.Value.(pflag.SliceValue); ok {
				s.Replace(nil)
			} else {
				f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
	var out, errs bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errs)
	rootCmd.SetArgs(append([]string{"--color", "off"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCheck(t *testing.T) {
	setupProject(t)
	out, err := run(t, "check")
	if !errors.Is(err, errProblems) {
		t.Errorf("check returned %v, want errProblems", err)
	}
	want := "a.kt:6:18: Fill all remaining arguments (demo.Point)\n"
	if out != want {
		t.Errorf("check output:\n%s\nwant:\n%s", out, want)
	}

	out, err = run(t, "check", "--preset", "specify", "a.kt")
	if !errors.Is(err, errProblems) {
		t.Errorf("check --preset specify returned %v, want errProblems", err)
	}
	if !strings.Contains(out, "Fill empty values") {
		t.Errorf("check --preset specify output %q lacks the preset's message", out)
	}

	if _, err := run(t, "check", "--preset", "nonesuch"); err == nil {
		t.Errorf("check with an unknown preset succeeded")
	}
}

func TestFixWrite(t *testing.T) {
	ar := setupProject(t)
	if _, err := run(t, "fix", "-w"); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile("a.kt")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(golden(t, ar, "a.kt"), string(got)); diff != "" {
		t.Errorf("fixed a.kt mismatch (-want +got):\n%s", diff)
	}
	if out, err := run(t, "check"); err != nil || out != "" {
		t.Errorf("check after fix = %q, %v; want no problems", out, err)
	}
}

func TestFixDiff(t *testing.T) {
	setupProject(t)
	out, err := run(t, "fix")
	if !errors.Is(err, errProblems) {
		t.Errorf("fix returned %v, want errProblems", err)
	}
	for _, line := range []string{"--- a/a.kt", "+++ b/a.kt", "-    val p = Point(x = 1)", "+        y = 0"} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("diff lacks line %q:\n%s", line, out)
		}
	}
}

func TestFixJSON(t *testing.T) {
	ar := setupProject(t)
	out, err := run(t, "fix", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var fix jsonFix
	if err := json.Unmarshal([]byte(out), &fix); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if fix.File != "a.kt" || fix.Line != 6 || fix.Callee != "demo.Point" {
		t.Errorf("fix = %+v, want a.kt:6 for demo.Point", fix)
	}
	if fix.Snippet == "" {
		t.Errorf("fix has no snippet")
	}
	src, err := os.ReadFile("a.kt")
	if err != nil {
		t.Fatal(err)
	}
	var edits []diff.Edit
	for _, e := range fix.Edits {
		edits = append(edits, diff.Edit{Start: e.Start, End: e.End, New: e.New})
	}
	got, err := diff.Apply(string(src), edits)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(golden(t, ar, "a.kt"), got); diff != "" {
		t.Errorf("applying edits (-want +got):\n%s", diff)
	}
}

func TestSettingsFile(t *testing.T) {
	setupProject(t)
	if err := os.WriteFile("custom.yaml", []byte("trailingComma: true\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "fix", "-w", "--config", "custom.yaml"); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile("a.kt")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "        y = 0,\n    )") {
		t.Errorf("fixed file lacks a trailing comma:\n%s", got)
	}

	if err := os.WriteFile("bad.yaml", []byte("colour: red\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "check", "--config", "bad.yaml"); err == nil {
		t.Errorf("check with an unknown setting succeeded")
	}
}

func TestUpdate(t *testing.T) {
	setupProject(t)
	var out bytes.Buffer
	a := &app{
		settings: settings.Default(),
		opts:     fillargs.DefaultOptions(),
		logger:   slog.Default(),
		stdout:   &out,
	}
	ctx := context.Background()
	ix, _, err := a.load(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}

	src := "package demo\n\nval q = Point(y = 2)\n"
	if err := os.WriteFile("b.kt", []byte(src), 0o666); err != nil {
		t.Fatal(err)
	}
	ix, changed, err := a.update(ctx, ix, []string{"."}, []string{"b.kt"})
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 1 || changed[0].Name != "b.kt" {
		t.Fatalf("update changed %v, want b.kt", changed)
	}
	n, err := a.check(ctx, ix, changed)
	if err != nil {
		t.Fatal(err)
	}
	if want := "b.kt:3:14: Fill all remaining arguments (demo.Point)\n"; n != 1 || out.String() != want {
		t.Errorf("check after update = %d, %q; want 1, %q", n, out.String(), want)
	}

	if err := os.Remove("b.kt"); err != nil {
		t.Fatal(err)
	}
	ix, changed, err = a.update(ctx, ix, []string{"."}, []string{"b.kt"})
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 0 || ix.File("b.kt") != nil {
		t.Errorf("after deletion: changed %v, b.kt indexed: %t", changed, ix.File("b.kt") != nil)
	}
	if ix.File("a.kt") == nil {
		t.Errorf("a.kt not indexed after reload")
	}
}
