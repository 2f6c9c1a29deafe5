package qlearn

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// External key-value store holding a full table snapshot
type Store interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
	Close() error
	String() string
}

// JSON object of state key -> list of 7 values, the single file is
// replaced on every save
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) String() string {
	return "file:" + s.path
}

func (s *FileStore) Load() (Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "read q-table")
	}

	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, errors.Wrapf(ErrBadSnapshot, "decode %s: %v", s.path, err)
	}
	if snapshot == nil {
		// 'null' document
		snapshot = Snapshot{}
	}
	return snapshot, nil
}

// Write to a temp file and rename, readers never see a partial table
func (s *FileStore) Save(snapshot Snapshot) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create q-table dir")
		}
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "encode q-table")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrap(err, "write q-table")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "rename q-table")
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
