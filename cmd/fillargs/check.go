// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/orange-guo/fill-kotlin-arguments/internal/diff"
	"github.com/orange-guo/fill-kotlin-arguments/internal/fillargs"
	"github.com/orange-guo/fill-kotlin-arguments/internal/kotlin"
)

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Report calls that do not pass every argument",
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, files, err := cli.load(cmd.Context(), args)
		if err != nil {
			return err
		}
		n, err := cli.check(cmd.Context(), ix, files)
		if err != nil {
			return err
		}
		if n > 0 {
			return errProblems
		}
		return nil
	},
}

// A report is the problems found in one file.
type report struct {
	file     *kotlin.File
	problems []*fillargs.Problem
}

// check diagnoses files and prints the problems found. It returns their
// number.
func (a *app) check(ctx context.Context, ix *kotlin.Index, files []*kotlin.File) (int, error) {
	reports, err := eachFile(ctx, a, files, func(ctx context.Context, f *kotlin.File) (report, error) {
		problems, err := fillargs.Diagnose(ctx, ix.View(f), a.opts)
		return report{f, problems}, err
	})
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range reports {
		for _, p := range r.problems {
			printProblem(a.stdout, r.file, p)
			n++
		}
	}
	return n, nil
}

// printProblem prints p in the form file:line:col: message (callee).
func printProblem(w io.Writer, f *kotlin.File, p *fillargs.Problem) {
	line, col := diff.LineCol(string(f.Src), p.Pos)
	fmt.Fprintf(w, "%s %s %s\n",
		posColor.Sprintf("%s:%d:%d:", f.Name, line, col),
		msgColor.Sprint(p.Message),
		nameColor.Sprintf("(%s)", p.Signature.Name))
}
