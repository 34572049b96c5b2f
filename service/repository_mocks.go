package service

import (
	"context"

	"planportal/events"
	"planportal/models"

	"github.com/stretchr/testify/mock"
)

// MockParticipantRepository is a mock implementation of ParticipantRepository
type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) GetByID(ctx context.Context, participantID int64) (*models.ParticipantContext, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ParticipantContext), args.Error(1)
}

// MockFundingSourceRepository is a mock implementation of FundingSourceRepository
type MockFundingSourceRepository struct {
	mock.Mock
}

func (m *MockFundingSourceRepository) GetByParticipant(ctx context.Context, participantID int64) ([]models.FundingSource, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FundingSource), args.Error(1)
}

// MockApplicationStore is a mock implementation of ApplicationStore
type MockApplicationStore struct {
	mock.Mock
}

func (m *MockApplicationStore) Get(ctx context.Context, participantID int64) (*models.LoanApplication, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoanApplication), args.Error(1)
}

func (m *MockApplicationStore) Save(ctx context.Context, app *models.LoanApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationStore) Delete(ctx context.Context, participantID int64) error {
	args := m.Called(ctx, participantID)
	return args.Error(0)
}

// MockSubmissionRepository is a mock implementation of SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *models.LoanSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetByParticipant(ctx context.Context, participantID int64) ([]*models.LoanSubmission, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LoanSubmission), args.Error(1)
}

// MockCacheRepository is a mock implementation of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// NoopEventPublisher discards events; used where tests do not assert on them
type NoopEventPublisher struct{}

func (NoopEventPublisher) Emit(ctx context.Context, event events.Event) {}

// MockEventPublisher records emitted events for assertions
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Emit(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}
