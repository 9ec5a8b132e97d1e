package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileStore deletes user artifacts by logical path under a single
// root. Paths are cleaned and confined to the root so a crafted logical
// path cannot escape it.
type LocalFileStore struct {
	Root string
}

func NewLocalFileStore(root string) *LocalFileStore {
	return &LocalFileStore{Root: root}
}

func (s *LocalFileStore) resolve(logical string) (string, error) {
	cleaned := filepath.Clean("/" + logical)
	full := filepath.Join(s.Root, cleaned)
	if !strings.HasPrefix(full, filepath.Clean(s.Root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes storage root", logical)
	}
	return full, nil
}

func (s *LocalFileStore) Delete(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func (s *LocalFileStore) DeleteDir(dir string) error {
	full, err := s.resolve(dir)
	if err != nil {
		return err
	}
	return os.RemoveAll(full)
}
