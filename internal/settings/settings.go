// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings defines the user settings of the inspection and loads
// them from a YAML file.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/orange-guo/fill-kotlin-arguments/internal/fillargs"
	"github.com/orange-guo/fill-kotlin-arguments/internal/merge"
	"github.com/orange-guo/fill-kotlin-arguments/internal/synth"
)

// ErrInvalid is wrapped by the errors that report an invalid setting.
var ErrInvalid = errors.New("invalid setting")

// FileName is the name of the settings file looked up in the working
// directory when none is given.
const FileName = ".fillargs.yaml"

// Options holds the user settings.
type Options struct {
	// Preset is the inspection preset: "fill" or "specify".
	Preset string `yaml:"preset"`

	// Strings overrides the string values of the preset: "empty" or
	// "random". Empty means the preset's choice.
	Strings string `yaml:"strings"`

	// SeparateLines puts the arguments of a fixed call on separate lines.
	SeparateLines bool `yaml:"separateLines"`

	// TrailingComma adds a trailing comma to fixed argument lists.
	TrailingComma bool `yaml:"trailingComma"`

	// TabStops presents every inserted value as a tab stop in
	// interactive output.
	TabStops bool `yaml:"tabStops"`

	// Indent is the indentation unit of split argument lists.
	Indent string `yaml:"indent"`

	// MaxDepth bounds the nesting of synthesized constructor calls.
	MaxDepth int `yaml:"maxDepth"`

	// Concurrency bounds the number of files processed at once.
	// Zero means GOMAXPROCS.
	Concurrency int `yaml:"concurrency"`
}

// Default returns the default settings.
func Default() *Options {
	m := merge.DefaultOptions()
	return &Options{
		Preset:        fillargs.Fill.Name,
		SeparateLines: m.SeparateLines,
		TrailingComma: m.TrailingComma,
		TabStops:      m.TabStops,
		Indent:        merge.DefaultUnit,
		MaxDepth:      synth.DefaultMaxDepth,
	}
}

// Parse returns the default settings overridden by the YAML document
// data. Unknown keys are an error.
func Parse(data []byte) (*Options, error) {
	o := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(o); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Load reads the settings file at path. If path is empty, FileName is
// read from the working directory, and its absence yields the defaults.
func Load(path string) (*Options, error) {
	name := path
	if name == "" {
		name = FileName
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if path == "" && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	o, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	slog.Debug("settings loaded", slog.String("file", name), slog.String("preset", o.Preset))
	return o, nil
}

// Validate reports the first invalid setting of o.
func (o *Options) Validate() error {
	if _, err := fillargs.LookupPreset(o.Preset); err != nil {
		return fmt.Errorf("%w: preset: %v", ErrInvalid, err)
	}
	if _, err := synth.Generator(o.Strings); err != nil {
		return fmt.Errorf("%w: strings: %v", ErrInvalid, err)
	}
	if o.Indent == "" || strings.Trim(o.Indent, " \t") != "" {
		return fmt.Errorf("%w: indent %q is not made of spaces and tabs", ErrInvalid, o.Indent)
	}
	if o.MaxDepth < 1 {
		return fmt.Errorf("%w: maxDepth %d is not positive", ErrInvalid, o.MaxDepth)
	}
	if o.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency %d is negative", ErrInvalid, o.Concurrency)
	}
	return nil
}

// Inspection returns the inspection options for o, which must be valid.
func (o *Options) Inspection(logger *slog.Logger) (fillargs.Options, error) {
	if err := o.Validate(); err != nil {
		return fillargs.Options{}, err
	}
	preset, _ := fillargs.LookupPreset(o.Preset)
	if o.Strings != "" {
		preset.Strings, _ = synth.Generator(o.Strings)
	}
	return fillargs.Options{
		Preset: preset,
		Merge: merge.Options{
			SeparateLines: o.SeparateLines,
			TrailingComma: o.TrailingComma,
			TabStops:      o.TabStops,
		},
		Indent:   o.Indent,
		MaxDepth: o.MaxDepth,
		Logger:   logger,
	}, nil
}
