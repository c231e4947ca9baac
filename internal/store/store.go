// Package store provides persistence backends for finalized session
// records. Backends share one Store interface; the in-memory store is
// the default when no DSN is configured.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/reflectlab/JournalPipe/internal/models"
)

// ErrNotFound is returned when a session record does not exist.
var ErrNotFound = errors.New("session record not found")

// Store persists session records.
type Store interface {
	// SaveSession inserts or replaces a session record.
	SaveSession(ctx context.Context, rec models.SessionRecord) error
	// GetSession returns the record with the given id, or ErrNotFound.
	GetSession(ctx context.Context, id string) (models.SessionRecord, error)
	// ListSessions returns all records for a participant ordered by
	// start time, oldest first.
	ListSessions(ctx context.Context, participantID string) ([]models.SessionRecord, error)
	// DeleteSession removes a record. Deleting a missing record returns
	// ErrNotFound.
	DeleteSession(ctx context.Context, id string) error
	// Close releases backend resources.
	Close() error
}

// InMemoryStore keeps session records in a map guarded by a mutex.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.SessionRecord
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]models.SessionRecord)}
}

// SaveSession inserts or replaces a session record.
func (s *InMemoryStore) SaveSession(_ context.Context, rec models.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[rec.ID] = rec
	return nil
}

// GetSession returns the record with the given id.
func (s *InMemoryStore) GetSession(_ context.Context, id string) (models.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[id]
	if !ok {
		return models.SessionRecord{}, ErrNotFound
	}
	return rec, nil
}

// ListSessions returns a participant's records ordered by start time.
func (s *InMemoryStore) ListSessions(_ context.Context, participantID string) ([]models.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.SessionRecord
	for _, rec := range s.sessions {
		if rec.Participant == participantID {
			out = append(out, rec)
		}
	}
	sortSessionsByStart(out)
	return out, nil
}

// DeleteSession removes a record.
func (s *InMemoryStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error { return nil }

var _ Store = (*InMemoryStore)(nil)
