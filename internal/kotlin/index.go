// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kotlin

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// An Index holds the declarations of a set of parsed files.
// It is immutable once built.
type Index struct {
	files   []*File
	byName  map[string]*File
	classes map[string]*Class  // by qualified name, including nested classes
	funcs   map[string][]*Func // top-level functions by qualified name
}

// NewIndex returns an index of the given files. A later file replaces an
// earlier one with the same name.
func NewIndex(files ...*File) *Index {
	ix := &Index{
		byName:  make(map[string]*File),
		classes: make(map[string]*Class),
		funcs:   make(map[string][]*Func),
	}
	for _, f := range files {
		if old, ok := ix.byName[f.Name]; ok {
			for i, g := range ix.files {
				if g == old {
					ix.files[i] = f
				}
			}
		} else {
			ix.files = append(ix.files, f)
		}
		ix.byName[f.Name] = f
	}
	for _, f := range ix.files {
		for _, c := range f.Classes {
			ix.addClass(c)
		}
		for _, fn := range f.Funcs {
			ix.funcs[fn.Name] = append(ix.funcs[fn.Name], fn)
		}
	}
	return ix
}

func (ix *Index) addClass(c *Class) {
	if _, dup := ix.classes[c.Name]; !dup {
		ix.classes[c.Name] = c
	}
	for _, n := range c.Nested {
		ix.addClass(n)
	}
}

// Files returns the indexed files in load order.
func (ix *Index) Files() []*File { return ix.files }

// File returns the indexed file with the given name, or nil.
func (ix *Index) File(name string) *File { return ix.byName[name] }

// Class returns the class with the given qualified name, or nil.
func (ix *Index) Class(name string) *Class { return ix.classes[name] }

// Replace returns a new index in which f replaces the file of the same
// name.
func (ix *Index) Replace(f *File) *Index {
	return NewIndex(append(append([]*File(nil), ix.files...), f)...)
}

// Sources returns the Kotlin files named by paths. Directories are walked
// recursively, skipping hidden directories; a named file that is not a
// Kotlin file is an error.
func Sources(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !IsKotlin(path) {
				return nil, fmt.Errorf("%s: %w", path, ErrNotKotlin)
			}
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if IsKotlin(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// Load reads and parses the Kotlin files named by paths, at most limit at a
// time (GOMAXPROCS if limit is not positive), and indexes them.
func Load(ctx context.Context, logger *slog.Logger, paths []string, limit int) (*Index, error) {
	names, err := Sources(paths)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	files := make([]*File, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, name := range names {
		g.Go(func() error {
			src, err := os.ReadFile(name)
			if err != nil {
				return err
			}
			f, err := Parse(ctx, name, src)
			if err != nil {
				return err
			}
			if f.HasErrors {
				logger.Warn("file has syntax errors", slog.String("file", name))
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("loaded Kotlin sources", slog.Int("files", len(files)))
	return NewIndex(files...), nil
}
