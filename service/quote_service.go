package service

import (
	"context"
	"encoding/json"
	"fmt"

	"planportal/models"

	log "github.com/sirupsen/logrus"
)

type quoteService struct {
	cache CacheRepository
}

// NewQuoteService creates a new quote service backed by the given cache
func NewQuoteService(cache CacheRepository) QuoteService {
	return &quoteService{cache: cache}
}

// Quote computes the repayment picture for the input. Results are cached
// keyed by the full input, so a changed input can never be served a stale
// result.
func (s *quoteService) Quote(ctx context.Context, input models.CalculationInput) (*models.CalculationResult, error) {
	key := quoteKey(input)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var result models.CalculationResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
		log.WithField("key", key).Warn("Discarding unreadable cached quote")
	}

	result := Calculate(input)

	// Caching is best-effort; a cache failure never fails the quote.
	if encoded, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded)); err != nil {
			log.WithError(err).Warn("Failed to cache quote")
		}
	}

	return result, nil
}

func quoteKey(in models.CalculationInput) string {
	return fmt.Sprintf("quote:%.2f:%.6f:%d:%s:%.6f:%s",
		in.Amount, in.AnnualRate, in.TermYears, in.Cadence, in.OriginationFeePct,
		in.FirstPaymentDate.Format("2006-01-02"))
}
