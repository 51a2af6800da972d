// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/orange-guo/fill-kotlin-arguments/internal/diff"
	"github.com/orange-guo/fill-kotlin-arguments/internal/fillargs"
	"github.com/orange-guo/fill-kotlin-arguments/internal/kotlin"
	"github.com/orange-guo/fill-kotlin-arguments/internal/merge"
)

var fixCmd = &cobra.Command{
	Use:   "fix [path...]",
	Short: "Fill in the remaining arguments of calls",
	Long: `fix fills in the remaining arguments of every reported call.

By default the changes are printed as a unified diff. With -w they are
written back to the files. With -json every fix is printed as a JSON
object instead, with its edits and, with the tabStops setting, the
snippet an editor presents.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().BoolP("write", "w", false, "write the result to the source files")
	fixCmd.Flags().BoolP("diff", "d", false, "print a unified diff of the changes (default)")
	fixCmd.Flags().Bool("json", false, "print the fixes as JSON without applying them")
	fixCmd.MarkFlagsMutuallyExclusive("write", "diff", "json")
}

func runFix(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ix, files, err := cli.load(ctx, args)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if asJSON, _ := flags.GetBool("json"); asJSON {
		return cli.fixJSON(ctx, ix, files)
	}
	write, _ := flags.GetBool("write")

	results, err := eachFile(ctx, &cli, files, func(ctx context.Context, f *kotlin.File) (fixed, error) {
		src, n, err := fillargs.FixAll(ctx, f.Src, ix.Opener(ctx, f.Name), cli.opts)
		return fixed{f, src, n}, err
	})
	if err != nil {
		return err
	}
	total := 0
	for _, r := range results {
		if r.n == 0 {
			continue
		}
		total += r.n
		if write {
			if err := writeFile(r.file.Name, r.src); err != nil {
				return err
			}
			cli.logger.Info("fixed file", slog.String("file", r.file.Name), slog.Int("fixes", r.n))
			continue
		}
		if err := printDiff(cli.stdout, r.file.Name, r.file.Src, r.src); err != nil {
			return err
		}
	}
	if !write && total > 0 {
		return errProblems
	}
	return nil
}

// fixed is the result of fixing one file.
type fixed struct {
	file *kotlin.File
	src  []byte
	n    int
}

// writeFile replaces the content of name, keeping its permissions.
func writeFile(name string, src []byte) error {
	info, err := os.Stat(name)
	if err != nil {
		return err
	}
	return os.WriteFile(name, src, info.Mode().Perm())
}

// printDiff prints the unified diff between before and after.
func printDiff(w io.Writer, name string, before, after []byte) error {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
	if err != nil {
		return err
	}
	for _, line := range strings.SplitAfter(text, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprint(w, posColor.Sprint(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(w, addColor.Sprint(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(w, delColor.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprint(w, nameColor.Sprint(line))
		default:
			fmt.Fprint(w, line)
		}
	}
	return nil
}

// A jsonFix is the JSON form of the fix of one problem.
type jsonFix struct {
	File    string     `json:"file"`
	Line    int        `json:"line"`
	Col     int        `json:"col"`
	Message string     `json:"message"`
	Callee  string     `json:"callee"`
	Title   string     `json:"title"`
	Edits   []jsonEdit `json:"edits"`
	Snippet string     `json:"snippet,omitempty"`
}

type jsonEdit struct {
	Start int    `json:"start"` // byte offsets
	End   int    `json:"end"`
	New   string `json:"new"`
}

// fixJSON prints the fix of every problem of files, computed against
// the unchanged content, one JSON object per line.
func (a *app) fixJSON(ctx context.Context, ix *kotlin.Index, files []*kotlin.File) error {
	results, err := eachFile(ctx, a, files, func(ctx context.Context, f *kotlin.File) ([]jsonFix, error) {
		return a.fileFixes(ctx, ix.View(f))
	})
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, fixes := range results {
		for _, fix := range fixes {
			if err := enc.Encode(fix); err != nil {
				return err
			}
		}
	}
	_, err = buf.WriteTo(a.stdout)
	return err
}

func (a *app) fileFixes(ctx context.Context, v *kotlin.View) ([]jsonFix, error) {
	problems, err := fillargs.Diagnose(ctx, v, a.opts)
	if err != nil {
		return nil, err
	}
	var fixes []jsonFix
	for _, p := range problems {
		rec := new(recorder)
		var surface merge.Surface
		if a.opts.Merge.TabStops {
			surface = rec
		}
		fix, err := fillargs.SuggestedFix(ctx, v, p, a.opts, surface)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			a.logger.Debug("skipping fix", slog.String("file", v.Name()), slog.Any("error", err))
			continue
		}
		line, col := diff.LineCol(string(v.Src()), p.Pos)
		jf := jsonFix{
			File:    v.Name(),
			Line:    line,
			Col:     col,
			Message: p.Message,
			Callee:  p.Signature.Name,
			Title:   fix.Message,
			Snippet: rec.snippet,
		}
		for _, e := range fix.Edits() {
			jf.Edits = append(jf.Edits, jsonEdit{e.Start, e.End, e.New})
		}
		fixes = append(fixes, jf)
	}
	return fixes, nil
}

// A recorder is a merge.Surface that keeps the template it is given.
type recorder struct {
	snippet string
}

func (r *recorder) RunTemplate(offset int, snippet string) {
	r.snippet = snippet
}

