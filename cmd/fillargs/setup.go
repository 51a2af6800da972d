// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/orange-guo/fill-kotlin-arguments/internal/fillargs"
	"github.com/orange-guo/fill-kotlin-arguments/internal/kotlin"
	"github.com/orange-guo/fill-kotlin-arguments/internal/settings"
)

// An app holds the state shared by the commands of one invocation.
type app struct {
	settings *settings.Options
	opts     fillargs.Options
	logger   *slog.Logger
	sources  []string // extra roots to index
	stdout   io.Writer
}

// cli is the app of the running command, set by setup.
var cli app

var (
	posColor  = color.New(color.Bold)
	msgColor  = color.New(color.FgYellow)
	nameColor = color.New(color.FgCyan)
	addColor  = color.New(color.FgGreen)
	delColor  = color.New(color.FgRed)
)

// setup applies the persistent flags: it installs the logger, sets up
// colors and loads the settings.
func setup(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	levelName, err := flags.GetString("log-level")
	if err != nil {
		return err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	mode, err := flags.GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "auto":
		fd := os.Stdout.Fd()
		color.NoColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("--color: unknown mode %q", mode)
	}

	path, err := flags.GetString("config")
	if err != nil {
		return err
	}
	s, err := settings.Load(path)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, s); err != nil {
		return err
	}
	opts, err := s.Inspection(logger)
	if err != nil {
		return err
	}
	sources, err := flags.GetStringSlice("sources")
	if err != nil {
		return err
	}

	cli = app{settings: s, opts: opts, logger: logger, sources: sources, stdout: cmd.OutOrStdout()}
	return nil
}

// applyFlags overrides the settings with the flags set on the command
// line.
func applyFlags(cmd *cobra.Command, s *settings.Options) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("preset") {
		if s.Preset, err = flags.GetString("preset"); err != nil {
			return err
		}
	}
	if flags.Changed("strings") {
		if s.Strings, err = flags.GetString("strings"); err != nil {
			return err
		}
	}
	if flags.Changed("trailing-comma") {
		if s.TrailingComma, err = flags.GetBool("trailing-comma"); err != nil {
			return err
		}
	}
	if flags.Changed("no-split") {
		noSplit, err := flags.GetBool("no-split")
		if err != nil {
			return err
		}
		s.SeparateLines = !noSplit
	}
	if flags.Changed("jobs") {
		if s.Concurrency, err = flags.GetInt("jobs"); err != nil {
			return err
		}
	}
	return s.Validate()
}

func (a *app) jobs() int {
	if a.settings.Concurrency > 0 {
		return a.settings.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// load indexes the files named by paths and the extra source roots, and
// returns the index and the files to process.
func (a *app) load(ctx context.Context, paths []string) (*kotlin.Index, []*kotlin.File, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	targets, err := kotlin.Sources(paths)
	if err != nil {
		return nil, nil, err
	}
	ix, err := kotlin.Load(ctx, a.logger, append(append([]string(nil), paths...), a.sources...), a.jobs())
	if err != nil {
		return nil, nil, err
	}
	var files []*kotlin.File
	seen := make(map[string]bool)
	for _, name := range targets {
		if f := ix.File(name); f != nil && !seen[name] {
			seen[name] = true
			files = append(files, f)
		}
	}
	return ix, files, nil
}

// eachFile calls f for every file, at most a.jobs() at a time, and
// returns the results in file order.
func eachFile[T any](ctx context.Context, a *app, files []*kotlin.File, f func(ctx context.Context, file *kotlin.File) (T, error)) ([]T, error) {
	results := make([]T, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.jobs())
	for i, file := range files {
		g.Go(func() error {
			r, err := f(ctx, file)
			if err != nil {
				return fmt.Errorf("%s: %w", file.Name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
