package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store, used by tests and as a stand-in
// persistence handle. Lists are copied on the way in and out so callers
// cannot mutate the stored state without calling Save.
type MemoryStore struct {
	mu    sync.Mutex
	name  string
	list  *TaskList
	saves int

	// LoadErr and SaveErr, when set, are returned by Load and Save.
	LoadErr error
	SaveErr error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{name: name}
}

// Location returns the store name.
func (s *MemoryStore) Location() string {
	return "memory:" + s.name
}

// Load returns a copy of the stored list.
func (s *MemoryStore) Load(_ context.Context) (*TaskList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.list == nil {
		return NewTaskList(), nil
	}
	return s.list.Clone(), nil
}

// Save stores a copy of list.
func (s *MemoryStore) Save(_ context.Context, list *TaskList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.list = list.Clone()
	s.saves++
	return nil
}

// Lock is a no-op; a MemoryStore lives in one process.
func (s *MemoryStore) Lock(_ context.Context) (func() error, error) {
	return func() error { return nil }, nil
}

// Saves returns how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
