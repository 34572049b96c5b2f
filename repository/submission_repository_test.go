package repository

import (
	"context"
	"testing"
	"time"

	"planportal/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	participants := NewParticipantRepository(testDB.DB)
	repo := NewSubmissionRepository(testDB.DB)
	ctx := context.Background()

	participant := testutil.CreateTestParticipant(1001)
	require.NoError(t, participants.Create(ctx, participant))

	t.Run("no submissions", func(t *testing.T) {
		submissions, err := repo.GetByParticipant(ctx, 1001)
		require.NoError(t, err)
		assert.Empty(t, submissions)
	})

	t.Run("round trip", func(t *testing.T) {
		submittedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		original := testutil.CreateTestSubmission(1001, submittedAt)
		require.NoError(t, repo.Create(ctx, original))

		submissions, err := repo.GetByParticipant(ctx, 1001)
		require.NoError(t, err)
		require.Len(t, submissions, 1)

		got := submissions[0]
		assert.Equal(t, original.ID, got.ID)
		assert.Equal(t, original.ApplicationID, got.ApplicationID)
		assert.Equal(t, original.Amount, got.Amount)
		assert.Equal(t, original.TermYears, got.TermYears)
		assert.Equal(t, original.PaymentCadence, got.PaymentCadence)
		assert.Equal(t, original.Purpose, got.Purpose)
		assert.Equal(t, original.PaymentPerPeriod, got.PaymentPerPeriod)
		assert.Equal(t, original.TotalRepayment, got.TotalRepayment)
		assert.Equal(t, original.NetDisbursement, got.NetDisbursement)
	})

	t.Run("newest first", func(t *testing.T) {
		older := testutil.CreateTestSubmission(1001, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		newer := testutil.CreateTestSubmission(1001, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, repo.Create(ctx, older))
		require.NoError(t, repo.Create(ctx, newer))

		submissions, err := repo.GetByParticipant(ctx, 1001)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(submissions), 2)
		assert.Equal(t, newer.ID, submissions[0].ID)
	})
}

func TestParticipantRepository_GetByID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewParticipantRepository(testDB.DB)
	ctx := context.Background()

	t.Run("not found returns nil", func(t *testing.T) {
		participant, err := repo.GetByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, participant)
	})

	t.Run("round trip", func(t *testing.T) {
		original := testutil.CreateTestParticipantWithBalance(2002, 42000)
		require.NoError(t, repo.Create(ctx, original))
		assert.False(t, original.CreatedAt.IsZero())

		participant, err := repo.GetByID(ctx, 2002)
		require.NoError(t, err)
		require.NotNil(t, participant)
		assert.Equal(t, float64(42000), participant.VestedBalance)
		assert.True(t, participant.IsEnrolled)
		assert.True(t, participant.IsMarried)
	})
}

func TestFundingSourceRepository_GetByParticipant(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	participants := NewParticipantRepository(testDB.DB)
	repo := NewFundingSourceRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, participants.Create(ctx, testutil.CreateTestParticipant(3003)))

	t.Run("no sources", func(t *testing.T) {
		sources, err := repo.GetByParticipant(ctx, 3003)
		require.NoError(t, err)
		assert.Empty(t, sources)
	})

	t.Run("display order preserved", func(t *testing.T) {
		expected := testutil.CreateTestFundingSources()
		// Insert out of order; position drives the ordering
		require.NoError(t, repo.Create(ctx, 3003, expected[2], 2))
		require.NoError(t, repo.Create(ctx, 3003, expected[0], 0))
		require.NoError(t, repo.Create(ctx, 3003, expected[1], 1))

		sources, err := repo.GetByParticipant(ctx, 3003)
		require.NoError(t, err)
		require.Len(t, sources, 3)
		assert.Equal(t, expected, sources)
	})
}
