package store

import (
	"sync"

	"github.com/curiogate/curiogate/internal/models"
)

// InMemoryStore is a Store kept entirely in memory, used in tests and as a
// neutral default when no database is configured.
type InMemoryStore struct {
	mu        sync.Mutex
	profile   models.ChildProfile
	interests []string
	pinHash   string
	unlocks   int
}

// NewInMemoryStore creates an empty in-memory settings store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// GetChildProfile returns the stored child profile.
func (s *InMemoryStore) GetChildProfile() (models.ChildProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, nil
}

// UpdateChildProfile stores the child profile.
func (s *InMemoryStore) UpdateChildProfile(p models.ChildProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	return nil
}

// GetSelectedInterests returns the ordered interest labels.
func (s *InMemoryStore) GetSelectedInterests() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.interests))
	copy(out, s.interests)
	return out, nil
}

// UpdateInterests replaces the ordered interest list.
func (s *InMemoryStore) UpdateInterests(labels []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interests = make([]string, len(labels))
	copy(s.interests, labels)
	return nil
}

// SetPin hashes and stores the parent PIN.
func (s *InMemoryStore) SetPin(pin string) error {
	hash, err := hashPin(pin)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pinHash = hash
	return nil
}

// VerifyPin checks a PIN against the stored hash.
func (s *InMemoryStore) VerifyPin(pin string) (bool, error) {
	s.mu.Lock()
	hash := s.pinHash
	s.mu.Unlock()
	return checkPin(pin, hash), nil
}

// LogEmergencyUnlock records a PIN-authorized bypass.
func (s *InMemoryStore) LogEmergencyUnlock(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlocks++
	return nil
}

// GetEmergencyUnlockCount returns the number of recorded bypasses.
func (s *InMemoryStore) GetEmergencyUnlockCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocks, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error { return nil }
