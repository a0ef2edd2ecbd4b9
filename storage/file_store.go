package storage

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-faster/errors"
)

var slotName = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileStore writes each slot to <dir>/<slot>.json. Each write goes to its own temp file and
// is renamed into place, so a reader never sees a half-written slot. Two processes sharing a
// directory overwrite each other: last writer wins.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

var _ KeyValueStore = (*FileStore)(nil)

func (f *FileStore) path(slot string) (string, error) {
	if !slotName.MatchString(slot) {
		return "", errors.Errorf("invalid slot name %q", slot)
	}
	return filepath.Join(f.dir, slot+".json"), nil
}

// Get reads a slot; a missing file is not an error
func (f *FileStore) Get(ctx context.Context, slot string) ([]byte, bool, error) {
	path, err := f.path(slot)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "read slot %s", slot)
	}
	return data, true, nil
}

// Set replaces a slot's content
func (f *FileStore) Set(ctx context.Context, slot string, data []byte) error {
	path, err := f.path(slot)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return errors.Wrap(err, "create store directory")
	}
	temp, err := os.CreateTemp(f.dir, slot+"-*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp file for slot %s", slot)
	}
	if _, err := temp.Write(data); err != nil {
		temp.Close()
		os.Remove(temp.Name())
		return errors.Wrapf(err, "write slot %s", slot)
	}
	if err := temp.Close(); err != nil {
		os.Remove(temp.Name())
		return errors.Wrapf(err, "write slot %s", slot)
	}
	if err := os.Chmod(temp.Name(), 0o644); err != nil {
		os.Remove(temp.Name())
		return errors.Wrapf(err, "write slot %s", slot)
	}
	if err := os.Rename(temp.Name(), path); err != nil {
		os.Remove(temp.Name())
		return errors.Wrapf(err, "replace slot %s", slot)
	}
	return nil
}

// Delete removes a slot; deleting a missing slot succeeds
func (f *FileStore) Delete(ctx context.Context, slot string) error {
	path, err := f.path(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete slot %s", slot)
	}
	return nil
}
