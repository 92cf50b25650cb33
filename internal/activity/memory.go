package activity

import (
	"context"
	"sync"
	"time"
)

type memoryKey struct {
	chatID int64
	userID int64
}

// MemoryStore keeps activity records in process memory. It backs the
// "memory" storage mode and the test suite. Concurrent writes to different
// keys never interfere; writes to the same key are last-write-wins.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[memoryKey]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[memoryKey]Record)}
}

// Record upserts last_active = now for the given (chat, user) pair.
func (s *MemoryStore) Record(_ context.Context, chatID, userID int64, username, firstName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[memoryKey{chatID: chatID, userID: userID}] = Record{
		ChatID:     chatID,
		UserID:     userID,
		Username:   normalizeName(username),
		FirstName:  normalizeName(firstName),
		LastActive: time.Now(),
	}
}

// Inactive returns all records for the chat with last_active strictly before
// the cutoff.
func (s *MemoryStore) Inactive(_ context.Context, chatID int64, before time.Time) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []Record
	for key, rec := range s.records {
		if key.chatID == chatID && rec.LastActive.Before(before) {
			records = append(records, rec)
		}
	}
	return records
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(context.Context) error {
	return nil
}

// Put replaces a record wholesale, including its timestamp. Tests use it to
// backdate last_active.
func (s *MemoryStore) Put(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[memoryKey{chatID: rec.ChatID, userID: rec.UserID}] = rec
}
