package history

import (
	"context"
	"slices"

	"boildown/internal/model"
)

// Store is the in-memory entry list backed by a Storage. It is not safe for
// concurrent use; Controller serialises access.
type Store struct {
	storage Storage
	entries []model.SummaryEntry
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Load replaces the in-memory list with the persisted one. On error the list is left empty.
func (s *Store) Load(ctx context.Context) error {
	s.entries = nil
	entries, err := s.storage.Load(ctx)
	if err != nil {
		return err
	}
	s.entries = entries
	return nil
}

// Entries returns a copy of the list, newest first.
func (s *Store) Entries() []model.SummaryEntry {
	return slices.Clone(s.entries)
}

func (s *Store) Len() int {
	return len(s.entries)
}

// Contains reports whether an entry with id is in the list.
func (s *Store) Contains(id string) bool {
	return slices.ContainsFunc(s.entries, func(e model.SummaryEntry) bool { return e.ID == id })
}

// Prepend persists entry followed by the current list. The in-memory list
// only changes once the save succeeded.
func (s *Store) Prepend(ctx context.Context, entry model.SummaryEntry) error {
	next := make([]model.SummaryEntry, 0, len(s.entries)+1)
	next = append(next, entry)
	next = append(next, s.entries...)
	if err := s.storage.Save(ctx, next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// Clear removes the persisted record, then the in-memory list.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Clear(ctx); err != nil {
		return err
	}
	s.entries = nil
	return nil
}
