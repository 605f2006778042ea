package watch

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/autobarrel/pkg/errors"
	"github.com/arthur-debert/autobarrel/pkg/logging"
	"github.com/arthur-debert/autobarrel/pkg/match"
)

// Source watches a directory tree recursively and emits Events. fsnotify
// only watches single directories, so the source registers every
// non-ignored directory an include pattern could reach and follows
// directories as they are created or removed.
type Source struct {
	root    string
	include []string
	ignore  []string
	watcher *fsnotify.Watcher
	dirs    map[string]struct{}
	events  chan Event
	logger  zerolog.Logger
}

// NewSource creates a source rooted at root (an OS path). Watching starts
// at the static prefixes of the include patterns, and directories no
// include pattern could reach are not registered. Paths matching an ignore
// pattern are neither watched nor reported. With no include patterns the
// whole tree is watched.
func NewSource(root string, include, ignore []string) (*Source, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, errors.Wrapf(err, errors.ErrWatchStart, "failed to watch %s", root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrWatchStart, "failed to create filesystem watcher")
	}

	s := &Source{
		root:    root,
		include: include,
		ignore:  ignore,
		watcher: watcher,
		dirs:    make(map[string]struct{}),
		events:  make(chan Event, 64),
		logger:  logging.GetLogger("watch.source"),
	}

	for _, start := range s.starts() {
		if err := s.addTree(start); err != nil {
			_ = watcher.Close()
			return nil, errors.Wrapf(err, errors.ErrWatchStart, "failed to watch %s", s.abs(start))
		}
	}

	s.logger.Debug().Str("root", root).Int("directories", len(s.dirs)).Msg("Watching directory tree")
	return s, nil
}

// Events returns the channel events are delivered on. It is closed when Run
// returns.
func (s *Source) Events() <-chan Event {
	return s.events
}

// Run translates fsnotify notifications until ctx is cancelled or the
// watcher fails, then closes the events channel and the watcher.
func (s *Source) Run(ctx context.Context) {
	defer close(s.events)
	defer s.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			for _, out := range s.translate(ev) {
				select {
				case s.events <- out:
				case <-ctx.Done():
					return
				}
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn().Err(err).Msg("Filesystem watcher error")
		}
	}
}

func (s *Source) translate(ev fsnotify.Event) []Event {
	rel, ok := s.relative(ev.Name)
	if !ok || match.Any(s.ignore, rel) {
		return nil
	}

	switch {
	case ev.Has(fsnotify.Create):
		info, err := os.Stat(ev.Name)
		if err != nil {
			// Gone again before we looked; a removal event follows.
			return nil
		}
		if !info.IsDir() {
			return []Event{{Op: OpAdd, Path: rel}}
		}
		return s.created(rel)

	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		if s.forget(rel) {
			return []Event{{Op: OpRemoveDir, Path: rel}}
		}
		return []Event{{Op: OpRemove, Path: rel}}

	case ev.Has(fsnotify.Write), ev.Has(fsnotify.Chmod):
		return []Event{{Op: OpChange, Path: rel}}
	}
	return nil
}

// starts returns the directories to walk from: the roots of the include
// patterns, each replaced by its nearest existing ancestor while missing.
// The ancestors are reachable, so a root created later is picked up.
func (s *Source) starts() []string {
	if len(s.include) == 0 {
		return []string{"."}
	}

	var starts []string
	for _, root := range match.Roots(s.include) {
		for root != "." {
			if info, err := os.Stat(s.abs(root)); err == nil && info.IsDir() {
				break
			}
			root = path.Dir(root)
		}
		starts = append(starts, root)
	}
	return starts
}

// reachable reports whether files below the directory rel could match an
// include pattern.
func (s *Source) reachable(rel string) bool {
	return len(s.include) == 0 || match.AnyMayContain(s.include, rel)
}

// created registers a new directory tree and reports it together with the
// files it already contains, which may have been moved in as a whole. An
// unreachable directory is reported but neither watched nor walked.
func (s *Source) created(rel string) []Event {
	events := []Event{{Op: OpAddDir, Path: rel}}
	if !s.reachable(rel) {
		return events
	}
	if err := s.addTree(rel); err != nil {
		s.logger.Warn().Err(err).Str("path", rel).Msg("Failed to watch new directory")
	}

	_ = filepath.WalkDir(s.abs(rel), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		child, ok := s.relative(p)
		if !ok || child == rel {
			return nil
		}
		if match.Any(s.ignore, child) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() && !s.reachable(child) {
			events = append(events, Event{Op: OpAddDir, Path: child})
			return filepath.SkipDir
		}
		if d.IsDir() {
			events = append(events, Event{Op: OpAddDir, Path: child})
		} else {
			events = append(events, Event{Op: OpAdd, Path: child})
		}
		return nil
	})
	return events
}

// addTree registers rel and every reachable, non-ignored directory below it.
func (s *Source) addTree(rel string) error {
	return filepath.WalkDir(s.abs(rel), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		child, ok := s.relative(p)
		if !ok {
			return nil
		}
		if child != "." && match.Any(s.ignore, child) {
			return filepath.SkipDir
		}
		if !s.reachable(child) {
			return filepath.SkipDir
		}
		if _, watched := s.dirs[child]; watched {
			return nil
		}
		if err := s.watcher.Add(p); err != nil {
			return err
		}
		s.dirs[child] = struct{}{}
		return nil
	})
}

// forget drops rel and everything below it from the watched set and reports
// whether rel was a watched directory. fsnotify removes the watches of
// deleted directories itself.
func (s *Source) forget(rel string) bool {
	_, wasDir := s.dirs[rel]
	prefix := rel + "/"
	for dir := range s.dirs {
		if dir == rel || strings.HasPrefix(dir, prefix) {
			delete(s.dirs, dir)
		}
	}
	return wasDir
}

func (s *Source) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func (s *Source) relative(name string) (string, bool) {
	rel, err := filepath.Rel(s.root, name)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return path.Clean(rel), true
}
