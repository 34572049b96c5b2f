package service

import (
	"context"
	"testing"
	"time"

	"planportal/models"
	"planportal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quoteInput() models.CalculationInput {
	return models.CalculationInput{
		Amount:            10000,
		AnnualRate:        0.085,
		TermYears:         3,
		Cadence:           models.CadenceMonthly,
		OriginationFeePct: 0.01,
		FirstPaymentDate:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestQuoteService_CacheMiss(t *testing.T) {
	ctx := context.Background()
	cache := new(MockCacheRepository)
	cache.On("Get", ctx, mock.AnythingOfType("string")).Return("", false)
	cache.On("Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)

	svc := NewQuoteService(cache)
	result, err := svc.Quote(ctx, quoteInput())
	require.NoError(t, err)
	assert.Equal(t, 36, result.NumberOfPayments)

	cache.AssertCalled(t, "Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"))
}

func TestQuoteService_CacheHit(t *testing.T) {
	ctx := context.Background()
	svc := NewQuoteService(repository.NewMemoryCache())

	first, err := svc.Quote(ctx, quoteInput())
	require.NoError(t, err)

	second, err := svc.Quote(ctx, quoteInput())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQuoteService_ChangedInputBypassesCache(t *testing.T) {
	ctx := context.Background()
	svc := NewQuoteService(repository.NewMemoryCache())

	first, err := svc.Quote(ctx, quoteInput())
	require.NoError(t, err)

	changed := quoteInput()
	changed.Amount = 20000
	second, err := svc.Quote(ctx, changed)
	require.NoError(t, err)
	assert.NotEqual(t, first.PaymentPerPeriod, second.PaymentPerPeriod)
}

func TestQuoteService_CacheFailureDoesNotFailQuote(t *testing.T) {
	ctx := context.Background()
	cache := new(MockCacheRepository)
	cache.On("Get", ctx, mock.AnythingOfType("string")).Return("", false)
	cache.On("Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(assert.AnError)

	svc := NewQuoteService(cache)
	result, err := svc.Quote(ctx, quoteInput())
	require.NoError(t, err)
	assert.InDelta(t, 315.68, result.PaymentPerPeriod, 0.01)
}

func TestQuoteService_CorruptCacheEntryRecomputes(t *testing.T) {
	ctx := context.Background()
	cache := new(MockCacheRepository)
	cache.On("Get", ctx, mock.AnythingOfType("string")).Return("not json", true)
	cache.On("Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)

	svc := NewQuoteService(cache)
	result, err := svc.Quote(ctx, quoteInput())
	require.NoError(t, err)
	assert.Equal(t, 36, result.NumberOfPayments)
}
