package credential

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store. It is used by tests and by callers
// that manage a single short-lived credential without local persistence.
type MemoryStore struct {
	mu    sync.Mutex
	creds map[string]Credential
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		creds: make(map[string]Credential),
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.creds[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &cred, nil
}

func (s *MemoryStore) Create(ctx context.Context, cred *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cred.ID == "" {
		cred.ID = uuid.NewString()
	}
	if _, ok := s.creds[cred.ID]; ok {
		return ErrAlreadyExists
	}

	now := time.Now()
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = now
	}
	cred.UpdatedAt = now
	s.creds[cred.ID] = *cred

	return nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.creds[id]
	if !ok {
		return ErrNotFound
	}

	cred.Key = key
	cred.UpdatedAt = time.Now()
	s.creds[id] = cred

	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := make([]Credential, 0, len(s.creds))
	for _, cred := range s.creds {
		creds = append(creds, cred)
	}
	return creds, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.creds, id)
	return nil
}
