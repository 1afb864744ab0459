package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fileStore keeps each slot as a JSON file under a base directory. This is
// the localStorage analog for an interactive client running on a real
// filesystem.
type fileStore struct {
	dir string
}

func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	return &fileStore{dir: dir}, nil
}

func (f *fileStore) path(key string) string {
	// Slot keys are fixed names ("cart", "user", "token"); the replacement
	// guards against a key ever carrying a separator.
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")

	return filepath.Join(f.dir, safe+".json")
}

func (f *fileStore) Get(_ context.Context, key string, value any) (bool, error) {

	data, err := os.ReadFile(f.path(key))
	if err != nil {

		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("failed to unmarshal stored data for key %s: %w", key, err)
	}

	return true, nil
}

func (f *fileStore) Set(_ context.Context, key string, value any) error {

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	// Write to a temp file and rename so a crash mid-write never leaves a
	// truncated slot behind.
	tmp, err := os.CreateTemp(f.dir, key+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for key %s: %w", key, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to close temp file for key %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to persist key %s: %w", key, err)
	}

	return nil
}

func (f *fileStore) Delete(_ context.Context, key string) error {

	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}

func (f *fileStore) Close() error {
	return nil
}
