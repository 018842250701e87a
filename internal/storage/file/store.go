// Package file implements storage.KV on top of a directory of plain files,
// one file per key. Writes go through a temp file and rename so a crashed
// write never leaves a half-written value behind.
package file

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"

	"github.com/ccaceres17/supercatalogue/internal/storage"
)

var _ storage.KV = (*Store)(nil)

// Store persists values under dir, one file per key.
type Store struct {
	dir string
}

// New creates the backing directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create state directory")
	}
	return &Store{dir: dir}, nil
}

// Get reads the value stored for key. A missing file reports absence, not an
// error.
func (s *Store) Get(key string) (string, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "read %q", key)
	}
	return string(data), true, nil
}

// Set writes value for key atomically with respect to concurrent readers.
func (s *Store) Set(key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, key+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "create temp for %q", key)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "write %q", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "close temp for %q", key)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "rename %q", key)
	}
	return nil
}

// Remove deletes the value for key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %q", key)
	}
	return nil
}

// path maps a key to its file, rejecting keys that would escape the
// directory.
func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", errors.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}
