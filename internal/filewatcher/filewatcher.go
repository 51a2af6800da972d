// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filewatcher reports changes to the Kotlin sources of a
// directory tree in debounced batches.
package filewatcher

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// A ChangeType is the kind of a file change.
type ChangeType int

const (
	Created ChangeType = iota + 1
	Changed
	Deleted
)

func (t ChangeType) String() string {
	switch t {
	case Created:
		return "created"
	case Changed:
		return "changed"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

// An Event is a change to a file or directory.
type Event struct {
	Path  string
	Type  ChangeType
	IsDir bool
}

// Watcher collects the events of a [fsnotify.Watcher] and sends them in
// batches, once no relevant event has happened for the configured delay.
// Only directories and Kotlin source files are relevant.
type Watcher struct {
	logger *slog.Logger

	closed chan struct{}
	wg     sync.WaitGroup

	mu          sync.Mutex
	watchedDirs map[string]bool // directories added with watcher.Add
	watcher     *fsnotify.Watcher
	events      []Event // current batch
}

// New creates a Watcher and starts its event loop. It returns the
// channels on which batches of events and watch errors are delivered;
// both are closed by [Watcher.Close].
func New(delay time.Duration, logger *slog.Logger) (*Watcher, <-chan []Event, <-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{
		logger:      logger,
		watcher:     watcher,
		watchedDirs: make(map[string]bool),
		closed:      make(chan struct{}),
	}

	events := make(chan []Event)
	errs := make(chan error)

	w.wg.Add(1)
	go w.run(events, errs, delay)

	return w, events, errs, nil
}

func (w *Watcher) run(events chan<- []Event, errs chan<- error, delay time.Duration) {
	defer w.wg.Done()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-w.closed:
			// The receiver may have stopped listening: drop the
			// pending batch rather than block.
			close(errs)
			close(events)
			return

		case <-timer.C:
			w.send(events)
			timer.Reset(delay)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				continue // closing; handled by <-w.closed
			}
			select {
			case errs <- err:
			case <-w.closed:
			}

		case event, ok := <-w.watcher.Events:
			if !ok {
				continue
			}
			// Events are handled in order: a file deleted and
			// recreated must not be reported the other way round.
			if e, ok := w.handle(event); ok {
				w.add(e)
				timer.Reset(delay)
			}
		}
	}
}

// skipDir reports whether a directory is skipped: hidden directories and
// build outputs.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "build" || name == "out"
}

// isSource reports whether a file change is relevant.
func isSource(path string) bool {
	switch filepath.Ext(path) {
	case ".kt", ".kts":
		return true
	}
	return false
}

// WatchDir adds root and all its subdirectories to the watcher.
func (w *Watcher) WatchDir(root string) error {
	root = filepath.Clean(root)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watchDir(path); err != nil {
			w.logger.Warn("cannot watch directory", slog.String("dir", path), slog.Any("error", err))
			return filepath.SkipDir
		}
		return nil
	})
}

// handle converts an fsnotify event. It reports false for irrelevant
// events.
func (w *Watcher) handle(event fsnotify.Event) (Event, bool) {
	path := filepath.Clean(event.Name)

	var isDir bool
	if info, err := os.Stat(path); err == nil {
		isDir = info.IsDir()
	} else if os.IsNotExist(err) {
		// The item is gone; only the watch table knows what it was.
		isDir = w.isDir(path)
	} else {
		w.logger.Error("cannot stat changed path", slog.String("path", path), slog.Any("error", err))
		return Event{}, false
	}

	if isDir {
		if skipDir(filepath.Base(path)) {
			return Event{}, false
		}
		switch {
		case event.Op.Has(fsnotify.Rename), event.Op.Has(fsnotify.Remove):
			// Rename carries no new path; a Create follows if the
			// destination is watched.
			w.unwatchDir(path)
			return Event{Path: path, Type: Deleted, IsDir: true}, true
		case event.Op.Has(fsnotify.Create):
			if err := w.WatchDir(path); err != nil {
				w.logger.Warn("cannot watch new directory", slog.String("dir", path), slog.Any("error", err))
			}
			return Event{Path: path, Type: Created, IsDir: true}, true
		}
		return Event{}, false
	}

	if !isSource(path) {
		return Event{}, false
	}
	var t ChangeType
	switch {
	case event.Op.Has(fsnotify.Rename), event.Op.Has(fsnotify.Remove):
		t = Deleted
	case event.Op.Has(fsnotify.Create):
		t = Created
	case event.Op.Has(fsnotify.Write):
		t = Changed
	default:
		return Event{}, false // chmod
	}
	return Event{Path: path, Type: t}, true
}

func (w *Watcher) watchDir(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.watcher.Add(path); err != nil {
		return err
	}
	w.watchedDirs[path] = true
	return nil
}

func (w *Watcher) unwatchDir(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// fsnotify drops the watch of a removed directory itself.
	delete(w.watchedDirs, path)
}

func (w *Watcher) isDir(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.watchedDirs[path]
}

// add appends e to the current batch, dropping an exact repeat of the
// previous event.
func (w *Watcher) add(e Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.events) == 0 || w.events[len(w.events)-1] != e {
		w.events = append(w.events, e)
	}
}

// send delivers the current batch. The lock is not held while sending, so
// that Close can proceed while the receiver is not listening.
func (w *Watcher) send(events chan<- []Event) {
	w.mu.Lock()
	batch := w.events
	w.events = nil
	w.mu.Unlock()

	if len(batch) == 0 {
		return
	}
	select {
	case events <- batch:
	case <-w.closed:
	}
}

// Close shuts the watcher down and waits for its event loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	err := w.watcher.Close()
	close(w.closed)
	w.mu.Unlock()

	w.wg.Wait()
	return err
}

// Paths returns the distinct paths of the changed source files of a
// batch, in the order of their first event.
func Paths(batch []Event) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, e := range batch {
		if e.IsDir || seen[e.Path] {
			continue
		}
		seen[e.Path] = true
		paths = append(paths, e.Path)
	}
	return paths
}
