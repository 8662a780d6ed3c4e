package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/benoitkugler/okavd/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// within returns true if `path` is `root` or lies under it.
func within(path, root string) bool {
	if root == "" {
		return false
	}
	absPath, err1 := filepath.Abs(path)
	absRoot, err2 := filepath.Abs(root)
	if err1 != nil || err2 != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// addRecursive watches `dir` and its sub-directories,
// except `skip` and its content.
func addRecursive(w *fsnotify.Watcher, dir, skip string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if within(path, skip) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// watch calls `onChange` when files of `dir` are created, modified or
// removed, until `ctx` is done. Events closer than `delay` are coalesced.
// Changes to `output` (a file or a directory) are ignored, so that
// the rendering does not trigger itself.
func watch(ctx context.Context, dir, output string, delay time.Duration, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err = addRecursive(w, dir, output); err != nil {
		return err
	}

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if within(e.Name, output) {
				continue
			}
			if e.Op&fsnotify.Create != 0 {
				if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
					if err := addRecursive(w, e.Name, output); err != nil {
						logging.Warnf("watching %s: %s", e.Name, err)
					}
				}
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logging.Debugf("%s: %s", e.Op, e.Name)
			fire = time.After(delay)
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Warnf("watch: %s", err)
		}
	}
}
