package repository

import (
	"context"
	"sync"

	"planportal/models"
)

// MemoryApplicationStore holds in-flight application drafts in memory. A
// draft lives only as long as the application attempt: it is discarded on
// exit or superseded by the recorded submission, so nothing here needs to
// survive a restart.
type MemoryApplicationStore struct {
	mu     sync.RWMutex
	drafts map[int64]*models.LoanApplication
}

// NewMemoryApplicationStore creates a new in-memory draft store
func NewMemoryApplicationStore() *MemoryApplicationStore {
	return &MemoryApplicationStore{
		drafts: make(map[int64]*models.LoanApplication),
	}
}

// Get retrieves the participant's in-flight application, or nil
func (s *MemoryApplicationStore) Get(ctx context.Context, participantID int64) (*models.LoanApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drafts[participantID], nil
}

// Save stores or replaces the participant's in-flight application
func (s *MemoryApplicationStore) Save(ctx context.Context, app *models.LoanApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[app.ParticipantID] = app
	return nil
}

// Delete discards the participant's in-flight application
func (s *MemoryApplicationStore) Delete(ctx context.Context, participantID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, participantID)
	return nil
}
