// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kotlin_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/orange-guo/fill-kotlin-arguments/internal/kotlin"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"src/a.kt":         "package a\n\nclass A(val x: Int)\n",
		"src/b/b.kts":      "package b\n\nfun b(y: Int) {}\n",
		"src/readme.md":    "# not Kotlin\n",
		".gradle/cache.kt": "package hidden\n\nclass Hidden\n",
		"build/out/gen.kt": "package gen\n\nclass Gen\n",
	})
	ix, err := kotlin.Load(context.Background(), slog.Default(), []string{dir}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(ix.Files()); got != 3 {
		t.Errorf("loaded %d files, want 3", got)
	}
	if ix.Class("a.A") == nil || ix.Class("gen.Gen") == nil {
		t.Errorf("classes of loaded files not indexed")
	}
	if ix.Class("hidden.Hidden") != nil {
		t.Errorf("file in hidden directory loaded")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"notes.txt": "hello\n"})
	_, err := kotlin.Load(context.Background(), slog.Default(), []string{filepath.Join(dir, "notes.txt")}, 0)
	if !errors.Is(err, kotlin.ErrNotKotlin) {
		t.Errorf("Load(notes.txt) = %v, want ErrNotKotlin", err)
	}
	if _, err := kotlin.Load(context.Background(), slog.Default(), []string{filepath.Join(dir, "missing")}, 0); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want ErrNotExist", err)
	}
}

func TestReplace(t *testing.T) {
	ctx := context.Background()
	a1, err := kotlin.Parse(ctx, "a.kt", []byte("package a\n\nclass Old\n"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := kotlin.Parse(ctx, "b.kt", []byte("package b\n\nclass B\n"))
	if err != nil {
		t.Fatal(err)
	}
	ix := kotlin.NewIndex(a1, b)

	a2, err := kotlin.Parse(ctx, "a.kt", []byte("package a\n\nclass New\n"))
	if err != nil {
		t.Fatal(err)
	}
	next := ix.Replace(a2)
	if next.Class("a.Old") != nil || next.Class("a.New") == nil {
		t.Errorf("Replace did not swap the declarations of a.kt")
	}
	if len(next.Files()) != 2 || next.Files()[0] != a2 {
		t.Errorf("Replace changed the file order: %v", next.Files())
	}
	if ix.Class("a.Old") == nil {
		t.Errorf("Replace modified the original index")
	}
}
