package barrel

import (
	"bytes"
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/autobarrel/pkg/errors"
	"github.com/arthur-debert/autobarrel/pkg/filesystem"
	"github.com/arthur-debert/autobarrel/pkg/logging"
)

const barrelPerm = 0644

// Writer turns a pruned tree into files on disk.
type Writer struct {
	fs     afero.Fs
	conv   Conventions
	prefix string
	dryRun bool
	logger zerolog.Logger
}

// NewWriter creates a writer. With dryRun set it only reports what would
// change.
func NewWriter(fsys afero.Fs, conv Conventions, prefix string, dryRun bool) *Writer {
	return &Writer{
		fs:     fsys,
		conv:   conv,
		prefix: prefix,
		dryRun: dryRun,
		logger: logging.GetLogger("barrel.writer"),
	}
}

// Write renders and writes the barrel of every directory in tree and
// deletes the barrels of the pruned directories. Writes and deletions run
// concurrently; each touches a distinct path.
func (w *Writer) Write(ctx context.Context, tree *Tree, pruned []string) (*Result, error) {
	result := &Result{DryRun: w.dryRun}
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	for _, dir := range tree.Dirs() {
		barrelPath := w.conv.BarrelPath(dir)
		content := Render(w.conv, dir, tree.Exports(dir), w.prefix)
		result.Barrels = append(result.Barrels, barrelPath)

		g.Go(func() error {
			updated, err := w.writeBarrel(barrelPath, []byte(content))
			if err != nil {
				return err
			}
			if updated {
				mu.Lock()
				result.Updated = append(result.Updated, barrelPath)
				mu.Unlock()
			}
			return nil
		})
	}

	for _, dir := range pruned {
		barrelPath := w.conv.BarrelPath(dir)
		g.Go(func() error {
			deleted, err := w.deleteBarrel(barrelPath)
			if err != nil {
				return err
			}
			if deleted {
				mu.Lock()
				result.Deleted = append(result.Deleted, barrelPath)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.sort()
	return result, nil
}

func (w *Writer) writeBarrel(barrelPath string, content []byte) (bool, error) {
	same, err := filesystem.SameContent(w.fs, barrelPath, content)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", barrelPath).
			WithDetail("path", barrelPath)
	}
	if same {
		w.logger.Trace().Str("path", barrelPath).Msg("Barrel up to date")
		return false, nil
	}
	if w.dryRun {
		w.logger.Debug().Str("path", barrelPath).Msg("Barrel is stale")
		return true, nil
	}

	if err := filesystem.WriteFileAtomic(w.fs, barrelPath, content, barrelPerm); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", barrelPath).
			WithDetail("path", barrelPath)
	}
	w.logger.Debug().Str("path", barrelPath).Msg("Wrote barrel")
	return true, nil
}

// deleteBarrel removes the barrel of a pruned directory. Only files carrying
// the marker line are removed; a hand-written index file is left alone.
func (w *Writer) deleteBarrel(barrelPath string) (bool, error) {
	content, found, err := filesystem.ReadIfExists(w.fs, barrelPath)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", barrelPath).
			WithDetail("path", barrelPath)
	}
	if !found {
		return false, nil
	}
	if !IsGenerated(content) {
		w.logger.Debug().Str("path", barrelPath).Msg("Keeping hand-written index in pruned directory")
		return false, nil
	}
	if w.dryRun {
		return true, nil
	}

	removed, err := filesystem.RemoveIfExists(w.fs, barrelPath)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileDelete, "failed to delete %s", barrelPath).
			WithDetail("path", barrelPath)
	}
	if removed {
		w.logger.Debug().Str("path", barrelPath).Msg("Deleted pruned barrel")
	}
	return removed, nil
}

// IsGenerated reports whether content was written by autobarrel: one of its
// lines is the marker. The marker is not necessarily the first line since a
// prefix may precede it.
func IsGenerated(content []byte) bool {
	for _, line := range bytes.Split(content, []byte("\n")) {
		if string(bytes.TrimRight(line, "\r")) == Marker {
			return true
		}
	}
	return false
}
