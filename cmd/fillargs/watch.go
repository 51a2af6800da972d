// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/orange-guo/fill-kotlin-arguments/internal/filewatcher"
	"github.com/orange-guo/fill-kotlin-arguments/internal/kotlin"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir...]",
	Short: "Check files again whenever they change",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("delay", 200*time.Millisecond, "quiet period before changes are checked")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if len(args) == 0 {
		args = []string{"."}
	}
	delay, err := cmd.Flags().GetDuration("delay")
	if err != nil {
		return err
	}
	for _, dir := range args {
		info, err := os.Stat(dir)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return &fs.PathError{Op: "watch", Path: dir, Err: errors.New("not a directory")}
		}
	}

	ix, files, err := cli.load(ctx, args)
	if err != nil {
		return err
	}
	if _, err := cli.check(ctx, ix, files); err != nil {
		return err
	}

	w, batches, errs, err := filewatcher.New(delay, cli.logger)
	if err != nil {
		return err
	}
	defer w.Close()
	for _, dir := range args {
		if err := w.WatchDir(dir); err != nil {
			return err
		}
	}
	cli.logger.Info("watching", slog.Any("dirs", args))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			cli.logger.Warn("watch error", slog.Any("error", err))
		case batch, ok := <-batches:
			if !ok {
				return nil
			}
			var changed []*kotlin.File
			ix, changed, err = cli.update(ctx, ix, args, filewatcher.Paths(batch))
			if err != nil {
				cli.logger.Error("reloading sources", slog.Any("error", err))
				continue
			}
			if _, err := cli.check(ctx, ix, changed); err != nil {
				cli.logger.Error("checking sources", slog.Any("error", err))
			}
		}
	}
}

// update returns ix updated for the changed paths, and the changed files
// that still exist. A deleted file makes it reload the whole of roots.
func (a *app) update(ctx context.Context, ix *kotlin.Index, roots, paths []string) (*kotlin.Index, []*kotlin.File, error) {
	var changed []*kotlin.File
	deleted := false
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			deleted = true
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		f, err := kotlin.Parse(ctx, path, src)
		if err != nil {
			return nil, nil, err
		}
		ix = ix.Replace(f)
		changed = append(changed, f)
	}
	if deleted {
		next, _, err := a.load(ctx, roots)
		if err != nil {
			return nil, nil, err
		}
		ix = next
		for i, f := range changed {
			if g := ix.File(f.Name); g != nil {
				changed[i] = g
			}
		}
	}
	return ix, changed, nil
}
