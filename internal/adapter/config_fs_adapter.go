// Package adapter contains filesystem and host-probing adapters for the
// remirror CLI.
package adapter

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	m "remirror.dev/pkg/remirror/internal/model"
)

// ConfigFS abstracts the filesystem operations the rewriter relies on.
// Hiding direct os access behind afero lets the domain logic run against
// an in-memory filesystem in tests.
type ConfigFS interface {
	// ReadFile loads a configuration file. Missing files surface the
	// underlying not-exist error so callers can start from an empty
	// config.
	ReadFile(path m.Path) ([]byte, error)

	// Exists reports whether a regular file is present at path.
	Exists(path m.Path) (bool, error)

	// WriteFileAtomic writes data to a temporary file in the destination
	// directory and renames it over path. A concurrent reader never sees
	// a partially written file, and an interrupted write leaves at most a
	// stray temp file behind.
	WriteFileAtomic(path m.Path, data []byte, perm os.FileMode) error
}

// AferoConfigFS implements ConfigFS on top of an afero.Fs.
type AferoConfigFS struct {
	fs afero.Fs
}

// NewLocalConfigFS returns a ConfigFS backed by the host filesystem.
func NewLocalConfigFS() *AferoConfigFS {
	return &AferoConfigFS{fs: afero.NewOsFs()}
}

// NewConfigFS wraps an arbitrary afero.Fs, used by tests with MemMapFs.
func NewConfigFS(fs afero.Fs) *AferoConfigFS {
	return &AferoConfigFS{fs: fs}
}

// ReadFile loads file contents.
func (a *AferoConfigFS) ReadFile(path m.Path) ([]byte, error) {
	return afero.ReadFile(a.fs, string(path))
}

// Exists reports whether a file exists at path.
func (a *AferoConfigFS) Exists(path m.Path) (bool, error) {
	info, err := a.fs.Stat(string(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	return !info.IsDir(), nil
}

// WriteFileAtomic implements the write-to-temp-then-rename discipline.
func (a *AferoConfigFS) WriteFileAtomic(path m.Path, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(string(path))

	if err := a.fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := afero.TempFile(a.fs, dir, ".remirror-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = a.fs.Remove(tmpName)

		return err
	}

	if err := tmp.Close(); err != nil {
		_ = a.fs.Remove(tmpName)
		return err
	}

	if err := a.fs.Chmod(tmpName, perm); err != nil {
		_ = a.fs.Remove(tmpName)
		return err
	}

	if err := a.fs.Rename(tmpName, string(path)); err != nil {
		_ = a.fs.Remove(tmpName)
		return err
	}

	return nil
}
