package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/stockbot/kmcp/pkg/logger"
)

// Store is a single-slot persistent record. Save always overwrites the slot
// wholesale; partial updates never happen.
type Store interface {
	Save(data interface{}) error
	Load(data interface{}) error
}

// ErrNotExists is returned by Load when the slot has never been written.
var ErrNotExists = errors.New("persistence data not exists")

// JSONFileStore keeps one JSON document at a fixed file path. Writes go
// through a temp file and rename, so readers never observe a torn record.
type JSONFileStore struct {
	path string
}

// NewJSONFileStore creates a store backed by the given file path.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Path returns the backing file path.
func (s *JSONFileStore) Path() string {
	return s.path
}

// Save overwrites the slot with the given data.
func (s *JSONFileStore) Save(data interface{}) error {
	logger.Debugf("[persistence] Save: path=%s", s.path)
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the slot into data. A missing or empty file yields ErrNotExists.
func (s *JSONFileStore) Load(data interface{}) error {
	logger.Debugf("[persistence] Load: path=%s", s.path)
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotExists
		}
		return err
	}
	if len(b) == 0 {
		return ErrNotExists
	}
	return json.Unmarshal(b, data)
}
