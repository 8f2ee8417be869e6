package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/bmpage/internal/model"
)

// Storage defines the interface for persisting the bookmark collection.
type Storage interface {
	Load() (*model.Collection, error)
	Save(coll *model.Collection) error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the collection from the JSON file.
// Returns an empty collection if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewCollection(), nil
		}
		return nil, err
	}

	var coll model.Collection
	if err := json.Unmarshal(data, &coll); err != nil {
		return nil, err
	}

	// Ensure slice is not nil
	if coll.Entries == nil {
		coll.Entries = []model.Entry{}
	}

	return &coll, nil
}

// Save writes the collection to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(coll *model.Collection) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(coll, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Open opens the storage backend by name. Unknown names are an error.
func Open(backend, path string) (Storage, error) {
	switch backend {
	case BackendSQLite, "":
		return NewSQLiteStorage(path)
	case BackendJSON:
		return NewJSONStorage(path), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
