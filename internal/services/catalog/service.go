// Package catalog manages the three menu collections (pizzas, drinks,
// desserts) with one generic service: find, create, update, delete and
// id-based resolution over a flat-file collection.
package catalog

import (
	"fmt"

	"github.com/samber/lo"

	"pizzeria-system/internal/apperr"
	"pizzeria-system/internal/storage"
)

// Entry constrains the item types a catalog can hold: any struct whose
// pointer exposes the shared catalog fields and payload validation.
type Entry[T any] interface {
	*T
	ItemID() int
	SetItemID(id int)
	ItemName() string
	IsAvailable() bool
	Validate() error
}

// Service manages one homogeneous catalog collection. Each operation is
// a full read-modify-write cycle against the backing file; there is no
// cross-process locking (single writer expected by convention).
type Service[T any, PT Entry[T]] struct {
	store *storage.Collection[T]
	kind  string
}

// NewService creates a catalog service over the given collection. The
// kind ("pizza", "drink", "dessert") appears in error messages.
func NewService[T any, PT Entry[T]](store *storage.Collection[T], kind string) *Service[T, PT] {
	return &Service[T, PT]{store: store, kind: kind}
}

// Kind returns the catalog's item kind.
func (s *Service[T, PT]) Kind() string { return s.kind }

// FindAll returns every item in storage order.
func (s *Service[T, PT]) FindAll() ([]T, error) {
	return s.store.ReadAll()
}

// FindOne returns the item with the given id.
func (s *Service[T, PT]) FindOne(id int) (T, error) {
	var zero T

	items, err := s.store.ReadAll()
	if err != nil {
		return zero, err
	}

	for i := range items {
		if PT(&items[i]).ItemID() == id {
			return items[i], nil
		}
	}
	return zero, fmt.Errorf("%s with id %d: %w", s.kind, id, apperr.ErrNotFound)
}

// FindByIDs resolves the requested ids against the current catalog
// snapshot. Ids with no match are silently dropped, so the result may be
// shorter than the input. The result follows catalog storage order, not
// request order, with one entry per requested occurrence (duplicate ids
// resolve to duplicate items).
func (s *Service[T, PT]) FindByIDs(ids []int) ([]T, error) {
	items, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}

	counts := lo.CountValues(ids)

	resolved := make([]T, 0, len(ids))
	for i := range items {
		for range counts[PT(&items[i]).ItemID()] {
			resolved = append(resolved, items[i])
		}
	}
	return resolved, nil
}

// Create validates the item, assigns the next id and persists it.
// Ids are monotonically increasing (max existing + 1) and never reused
// after deletion as long as a higher id remains.
func (s *Service[T, PT]) Create(item T) (T, error) {
	var zero T

	if err := PT(&item).Validate(); err != nil {
		return zero, err
	}

	items, err := s.store.ReadAll()
	if err != nil {
		return zero, err
	}

	PT(&item).SetItemID(nextID[T, PT](items))
	items = append(items, item)

	if err := s.store.WriteAll(items); err != nil {
		return zero, err
	}
	return item, nil
}

// Update validates and replaces the item with the given id.
func (s *Service[T, PT]) Update(id int, item T) (T, error) {
	var zero T

	if err := PT(&item).Validate(); err != nil {
		return zero, err
	}

	items, err := s.store.ReadAll()
	if err != nil {
		return zero, err
	}

	idx := s.indexOf(items, id)
	if idx == -1 {
		return zero, fmt.Errorf("%s with id %d: %w", s.kind, id, apperr.ErrNotFound)
	}

	PT(&item).SetItemID(id)
	items[idx] = item

	if err := s.store.WriteAll(items); err != nil {
		return zero, err
	}
	return item, nil
}

// Delete removes the item with the given id.
func (s *Service[T, PT]) Delete(id int) error {
	items, err := s.store.ReadAll()
	if err != nil {
		return err
	}

	idx := s.indexOf(items, id)
	if idx == -1 {
		return fmt.Errorf("%s with id %d: %w", s.kind, id, apperr.ErrNotFound)
	}

	items = append(items[:idx], items[idx+1:]...)
	return s.store.WriteAll(items)
}

func (s *Service[T, PT]) indexOf(items []T, id int) int {
	for i := range items {
		if PT(&items[i]).ItemID() == id {
			return i
		}
	}
	return -1
}

func nextID[T any, PT Entry[T]](items []T) int {
	if len(items) == 0 {
		return 1
	}
	maxID := lo.Max(lo.Map(items, func(item T, _ int) int {
		return PT(&item).ItemID()
	}))
	return maxID + 1
}
