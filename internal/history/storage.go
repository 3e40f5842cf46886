package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"boildown/internal/model"
	"boildown/internal/repository"
)

// RecordKey names the single local-storage record holding a client's history.
const RecordKey = "summaryEntries"

// ErrMalformedHistory is returned by Load when the stored record cannot be decoded.
var ErrMalformedHistory = errors.New("malformed history record")

// Storage persists one client's entry list, newest first.
type Storage interface {
	// Load returns nil, nil when nothing has been saved.
	Load(ctx context.Context) ([]model.SummaryEntry, error)
	Save(ctx context.Context, entries []model.SummaryEntry) error
	Clear(ctx context.Context) error
}

// LocalStorage keeps the list as a JSON array in the client's local_storage slice.
type LocalStorage struct {
	repo     repository.LocalStorageRepository
	clientID string
}

func NewLocalStorage(repo repository.LocalStorageRepository, clientID string) *LocalStorage {
	return &LocalStorage{repo: repo, clientID: clientID}
}

func (s *LocalStorage) Load(ctx context.Context) ([]model.SummaryEntry, error) {
	item, err := s.repo.GetItem(ctx, s.clientID, RecordKey)
	if err != nil {
		return nil, fmt.Errorf("get history record: %w", err)
	}
	if item == nil {
		return nil, nil
	}
	return decodeEntries([]byte(item.Value))
}

func (s *LocalStorage) Save(ctx context.Context, entries []model.SummaryEntry) error {
	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}
	if err := s.repo.SetItem(ctx, s.clientID, RecordKey, string(data)); err != nil {
		return fmt.Errorf("set history record: %w", err)
	}
	return nil
}

func (s *LocalStorage) Clear(ctx context.Context) error {
	if err := s.repo.RemoveItem(ctx, s.clientID, RecordKey); err != nil {
		return fmt.Errorf("remove history record: %w", err)
	}
	return nil
}

// MemoryStorage is an in-process Storage. The error fields, when set, are
// returned by the matching method instead of touching the data.
type MemoryStorage struct {
	mu  sync.Mutex
	raw []byte

	LoadErr  error
	SaveErr  error
	ClearErr error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// SetRaw replaces the stored record verbatim.
func (s *MemoryStorage) SetRaw(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = []byte(raw)
}

// Raw returns the stored record and whether one exists.
func (s *MemoryStorage) Raw() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.raw), s.raw != nil
}

func (s *MemoryStorage) Load(ctx context.Context) ([]model.SummaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.raw == nil {
		return nil, nil
	}
	return decodeEntries(s.raw)
}

func (s *MemoryStorage) Save(ctx context.Context, entries []model.SummaryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}
	s.raw = data
	return nil
}

func (s *MemoryStorage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.raw = nil
	return nil
}

func encodeEntries(entries []model.SummaryEntry) ([]byte, error) {
	if entries == nil {
		entries = []model.SummaryEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return data, nil
}

// decodeEntries rejects anything but a JSON array of entries with an id and a known mode.
func decodeEntries(data []byte) ([]model.SummaryEntry, error) {
	var entries []model.SummaryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHistory, err)
	}
	if entries == nil {
		return nil, fmt.Errorf("%w: record is not an array", ErrMalformedHistory)
	}
	for i, e := range entries {
		if e.ID == "" || !e.SummaryType.Valid() {
			return nil, fmt.Errorf("%w: entry %d is incomplete", ErrMalformedHistory, i)
		}
		if slices.ContainsFunc(entries[:i], func(prev model.SummaryEntry) bool { return prev.ID == e.ID }) {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformedHistory, e.ID)
		}
	}
	return entries, nil
}
