package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSession indicates no session record exists in storage.
var ErrNoSession = errors.New("no stored session")

// Storage persists the session record between process runs.
type Storage interface {
	// Load returns the raw session record, or ErrNoSession when absent.
	Load() ([]byte, error)
	// Save writes the raw session record, replacing any previous one.
	Save(data []byte) error
	// Clear removes the session record. Clearing an absent record is a no-op.
	Clear() error
}

// sessionFileName is the single canonical session record location under
// the product config directory. Earlier builds scattered the record across
// differently named keys; only this one is read or written now.
const sessionFileName = "session.json"

// productDirName is the per-user config directory for the product.
const productDirName = "bliic"

// FileStorage keeps the session record in one JSON file on disk.
type FileStorage struct {
	path string
}

// NewFileStorage creates storage backed by the given file path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultSessionPath returns the canonical session file location under the
// user's config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, productDirName, sessionFileName), nil
}

// Path returns the backing file path.
func (f *FileStorage) Path() string {
	return f.path
}

// Load reads the session record from disk.
func (f *FileStorage) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	return data, nil
}

// Save writes the session record with owner-only permissions; the record
// contains a bearer token.
func (f *FileStorage) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the session record from disk.
func (f *FileStorage) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
