package otp

import (
	"sync"

	"railbooking/internal/models"
)

// Store keeps at most one pending OTP record per email.
type Store interface {
	Put(record models.OTPRecord) error
	Get(email string) (models.OTPRecord, bool, error)
	Delete(email string) error
}

// MemoryStore is the default in-process store. Stale records linger until the
// next Verify touches them; expiry is enforced lazily, not by a sweep.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]models.OTPRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.OTPRecord)}
}

func (s *MemoryStore) Put(record models.OTPRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Email] = record
	return nil
}

func (s *MemoryStore) Get(email string) (models.OTPRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[email]
	return record, ok, nil
}

func (s *MemoryStore) Delete(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, email)
	return nil
}
