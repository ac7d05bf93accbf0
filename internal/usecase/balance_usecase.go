package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/splitit/internal/domain"
	"github.com/iho/splitit/internal/infrastructure/metrics"
)

// DefaultBalanceCacheTTL bounds staleness when an invalidation is missed.
const DefaultBalanceCacheTTL = 5 * time.Minute

// BalanceUseCase computes per-user balance reports.
type BalanceUseCase struct {
	splitRepo   SplitRepository
	paymentRepo PaymentRepository
	cache       Cache
	cacheTTL    time.Duration
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(
	splitRepo SplitRepository,
	paymentRepo PaymentRepository,
	cache Cache,
	cacheTTL time.Duration,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
) *BalanceUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultBalanceCacheTTL
	}
	return &BalanceUseCase{
		splitRepo:   splitRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
		metrics:     metrics,
	}
}

// GetBalance returns the balance report for a user, read through the cache.
// Splits and payments feed the same computation as one obligation stream.
func (uc *BalanceUseCase) GetBalance(ctx context.Context, userID string) (*domain.BalanceReport, error) {
	if uc.cache != nil {
		data, err := uc.cache.Get(ctx, balanceCacheKey(userID))
		if err == nil && data != nil {
			var report domain.BalanceReport
			if err := json.Unmarshal(data, &report); err == nil {
				if uc.metrics != nil {
					uc.metrics.BalanceCacheHits.Inc()
				}
				return &report, nil
			}
			uc.logger.Warn().Str("user_id", userID).Msg("discarding malformed cached balance")
		}
		if uc.metrics != nil {
			uc.metrics.BalanceCacheMisses.Inc()
		}
	}

	report, err := uc.computeBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			if err := uc.cache.Set(ctx, balanceCacheKey(userID), data, uc.cacheTTL); err != nil {
				uc.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to cache balance")
			}
		}
	}

	return report, nil
}

func (uc *BalanceUseCase) computeBalance(ctx context.Context, userID string) (*domain.BalanceReport, error) {
	splitRecords, err := uc.splitRepo.ListObligationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	paymentRecords, err := uc.paymentRepo.ListObligationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	records := make([]domain.ObligationRecord, 0, len(splitRecords)+len(paymentRecords))
	records = append(records, splitRecords...)
	records = append(records, paymentRecords...)

	report := domain.ComputeBalance(userID, records)

	if uc.metrics != nil {
		uc.metrics.BalanceComputations.Inc()
	}

	return &report, nil
}
