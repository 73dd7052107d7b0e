package offer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage persists uploaded offer screenshots outside the database. Offers
// keep only the path Save returns; the screenshot itself is fetched back
// through Get when the driver reviews an offer.
type Storage interface {
	// Save writes a screenshot and returns the path to fetch it back with
	Save(filename string, data []byte) (string, error)

	// Get reads a stored screenshot
	Get(path string) ([]byte, error)

	// Delete removes a stored screenshot
	Delete(path string) error
}

// LocalStorage keeps screenshots as plain files under a single directory.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory when missing.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// Save writes a screenshot under the storage directory
func (l *LocalStorage) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(l.basePath, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return filename, nil
}

// Get reads a screenshot back by the path Save returned
func (l *LocalStorage) Get(path string) ([]byte, error) {
	fullPath := filepath.Join(l.basePath, path)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Delete removes a screenshot from the storage directory
func (l *LocalStorage) Delete(path string) error {
	fullPath := filepath.Join(l.basePath, path)
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}
