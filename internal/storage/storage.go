// Package storage persists homogeneous collections as flat JSON files.
// Every write replaces the whole file; there is no record-level patching.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collection stores one slice of records in a single JSON file.
//
// The mutex serializes individual reads and writes within this process.
// Callers still perform read-modify-write cycles across separate calls,
// so concurrent writers (in-process or across processes) can lose
// updates; one writer at a time is expected by convention.
type Collection[T any] struct {
	mu   sync.Mutex
	path string
}

// NewCollection prepares a collection backed by dir/filename, creating
// the data directory if needed.
func NewCollection[T any](dir, filename string) (*Collection[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Collection[T]{path: filepath.Join(dir, filename)}, nil
}

// ReadAll returns every stored record. A missing file reads as an empty
// collection; any other filesystem error propagates unchanged.
func (c *Collection[T]) ReadAll() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", c.path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.path, err)
	}
	return records, nil
}

// WriteAll replaces the entire stored collection.
func (c *Collection[T]) WriteAll(records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.path, err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.path, err)
	}
	return nil
}

// Init writes the seed records only when the file does not exist yet.
func (c *Collection[T]) Init(seed []T) error {
	c.mu.Lock()
	exists := true
	if _, err := os.Stat(c.path); errors.Is(err, os.ErrNotExist) {
		exists = false
	}
	c.mu.Unlock()

	if exists {
		return nil
	}
	return c.WriteAll(seed)
}
