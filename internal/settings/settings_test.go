// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/orange-guo/fill-kotlin-arguments/internal/fillargs"
	"github.com/orange-guo/fill-kotlin-arguments/internal/settings"
)

func TestDefaultsEquivalence(t *testing.T) {
	if diff := cmp.Diff(settings.Default(), settings.Default()); diff != "" {
		t.Fatalf("default settings differ:\n%s", diff)
	}
	if err := settings.Default().Validate(); err != nil {
		t.Fatalf("default settings are invalid: %v", err)
	}
	opts, err := settings.Default().Inspection(nil)
	if err != nil {
		t.Fatal(err)
	}
	def := fillargs.DefaultOptions()
	if opts.Preset.Name != def.Preset.Name || opts.Merge != def.Merge || opts.Indent != def.Indent || opts.MaxDepth != def.MaxDepth {
		t.Errorf("Inspection(Default()) = %+v, want %+v", opts, def)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		check func(*settings.Options) bool
	}{
		{"empty", "", func(o *settings.Options) bool { return cmp.Equal(o, settings.Default()) }},
		{"preset", "preset: specify\n", func(o *settings.Options) bool { return o.Preset == "specify" }},
		{"layout", "separateLines: false\ntrailingComma: true\n", func(o *settings.Options) bool {
			return !o.SeparateLines && o.TrailingComma && o.TabStops
		}},
		{"indent", "indent: \"\\t\"\n", func(o *settings.Options) bool { return o.Indent == "\t" }},
		{"limits", "maxDepth: 4\nconcurrency: 2\n", func(o *settings.Options) bool {
			return o.MaxDepth == 4 && o.Concurrency == 2
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			o, err := settings.Parse([]byte(test.yaml))
			if err != nil {
				t.Fatal(err)
			}
			if !test.check(o) {
				t.Errorf("Parse(%q) = %+v", test.yaml, o)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, src := range []string{
		"preset: loud\n",
		"strings: lorem\n",
		"indent: \"\"\n",
		"indent: \"--\"\n",
		"maxDepth: 0\n",
		"concurrency: -1\n",
		"unknownKey: 1\n",
		"maxDepth: many\n",
	} {
		if _, err := settings.Parse([]byte(src)); !errors.Is(err, settings.ErrInvalid) {
			t.Errorf("Parse(%q) = %v, want ErrInvalid", src, err)
		}
	}
}

func TestInspectionStrings(t *testing.T) {
	o := settings.Default()
	o.Strings = "random"
	opts, err := o.Inspection(nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Preset.Name != "fill" {
		t.Errorf("preset = %s, want fill", opts.Preset.Name)
	}
	if s := opts.Preset.Strings(); s == "" {
		t.Errorf("strings override not applied: got an empty string")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("preset: specify\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	o, err := settings.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if o.Preset != "specify" {
		t.Errorf("Load: preset = %s", o.Preset)
	}

	if _, err := settings.Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want ErrNotExist", err)
	}

	t.Chdir(dir)
	o, err = settings.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(o, settings.Default()) {
		t.Errorf("Load(\"\") without %s = %+v, want defaults", settings.FileName, o)
	}
}
