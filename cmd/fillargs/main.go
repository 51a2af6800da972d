// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The fillargs command reports Kotlin calls that do not pass every
// parameter of their callee, and fills in the remaining arguments.
//
// Usage:
//
//	fillargs check [flags] [path...]
//	fillargs fix [-w | -d | -json] [flags] [path...]
//	fillargs watch [flags] [dir]
//	fillargs version
//
// Paths are Kotlin files or directories, walked recursively; the default
// is the working directory. Every file given is indexed, so that calls to
// functions and constructors declared in one file are resolved in the
// others. Directories given with -sources are indexed but not checked.
//
// Settings are read from .fillargs.yaml in the working directory, or from
// the file given with -config; flags override them.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/orange-guo/fill-kotlin-arguments/internal/settings"
)

// errProblems is returned by commands that found problems left unfixed.
var errProblems = errors.New("problems found")

var rootCmd = &cobra.Command{
	Use:           "fillargs",
	Short:         "Fill the remaining arguments of Kotlin calls",
	Long:          "fillargs reports Kotlin calls that do not pass every parameter of their callee and fills in placeholder values for the rest.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "settings file (default "+settings.FileName+" if present)")
	pf.String("log-level", "warn", "log level (debug|info|warn|error)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.StringSlice("sources", nil, "additional source roots to index but not check")
	pf.String("preset", "", "inspection preset (fill|specify)")
	pf.String("strings", "", "string values (empty|random)")
	pf.Bool("trailing-comma", false, "add a trailing comma to fixed argument lists")
	pf.Bool("no-split", false, "keep the arguments of fixed calls on one line")
	pf.IntP("jobs", "j", 0, "number of files processed at once (default GOMAXPROCS)")
	rootCmd.PersistentPreRunE = setup

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	switch {
	case err == nil:
	case errors.Is(err, errProblems):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "fillargs: %v\n", err)
		os.Exit(2)
	}
}
