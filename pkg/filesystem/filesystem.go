package filesystem

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path"

	"github.com/spf13/afero"
)

// NewBase returns an afero filesystem rooted at dir on the OS filesystem.
func NewBase(dir string) afero.Fs {
	return afero.NewBasePathFs(afero.NewOsFs(), dir)
}

// IOFS exposes fsys as a read-only io/fs view for glob matching.
func IOFS(fsys afero.Fs) fs.FS {
	return afero.NewIOFS(fsys)
}

// IsDir reports whether name exists and is a directory. A missing path is
// not an error.
func IsDir(fsys afero.Fs, name string) (bool, error) {
	info, err := fsys.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// ReadIfExists returns the content of name. A missing file yields
// found == false and no error.
func ReadIfExists(fsys afero.Fs, name string) (data []byte, found bool, err error) {
	data, err = afero.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// SameContent reports whether name already holds exactly data.
func SameContent(fsys afero.Fs, name string, data []byte) (bool, error) {
	current, err := afero.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(current, data), nil
}

// WriteFileAtomic replaces name with data by writing a temp file in the same
// directory and renaming it over the target, so readers never observe a
// partially written file.
func WriteFileAtomic(fsys afero.Fs, name string, data []byte, perm os.FileMode) error {
	dir := path.Dir(name)
	tmp, err := afero.TempFile(fsys, dir, "."+path.Base(name)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName)
		return err
	}
	if err := fsys.Chmod(tmpName, perm); err != nil {
		_ = fsys.Remove(tmpName)
		return err
	}
	if err := fsys.Rename(tmpName, name); err != nil {
		_ = fsys.Remove(tmpName)
		return err
	}
	return nil
}

// RemoveIfExists deletes name. A file that is already gone counts as
// success; removed reports whether this call deleted it.
func RemoveIfExists(fsys afero.Fs, name string) (removed bool, err error) {
	if err := fsys.Remove(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
