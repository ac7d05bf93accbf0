package usecase

import (
	"context"
	"time"

	"github.com/iho/splitit/internal/domain"
	"github.com/iho/splitit/internal/infrastructure/metrics"
)

// SettlementUseCase handles settlement of splits and payments.
//
// Settlement is a one-way transition. Each operation locks the row, checks the
// settled flag and flips it with a compare-and-set update inside a single
// transaction, so concurrent attempts resolve to exactly one winner.
type SettlementUseCase struct {
	txManager       TransactionManager
	expenditureRepo ExpenditureRepository
	splitRepo       SplitRepository
	paymentRepo     PaymentRepository
	idGen           IDGenerator
	retrier         Retrier
	cache           Cache
	metrics         *metrics.Metrics
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	txManager TransactionManager,
	expenditureRepo ExpenditureRepository,
	splitRepo SplitRepository,
	paymentRepo PaymentRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	metrics *metrics.Metrics,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager:       txManager,
		expenditureRepo: expenditureRepo,
		splitRepo:       splitRepo,
		paymentRepo:     paymentRepo,
		idGen:           idGen,
		retrier:         retrier,
		cache:           cache,
		metrics:         metrics,
	}
}

// SettleSplit marks a split as settled and records the discharge as a settled
// payment linked back to the split. When the split belongs to the payer of the
// expenditure, or carries a zero share, no money changed hands and no payment
// is recorded.
func (uc *SettlementUseCase) SettleSplit(ctx context.Context, splitID string) (*domain.Split, error) {
	start := time.Now()

	var settled *domain.Split
	operation := func() error {
		s, err := uc.settleSplitOnce(ctx, splitID)
		if err != nil {
			return err
		}
		settled = s
		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SplitsSettled.Inc()
		uc.metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	}

	return settled, nil
}

func (uc *SettlementUseCase) settleSplitOnce(ctx context.Context, splitID string) (*domain.Split, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	split, err := uc.splitRepo.GetByIDForUpdate(txCtx, tx, splitID)
	if err != nil {
		return nil, err
	}

	if err := split.Settle(); err != nil {
		if uc.metrics != nil {
			uc.metrics.SettlementConflicts.WithLabelValues("split").Inc()
		}
		return nil, err
	}

	expenditure, err := uc.expenditureRepo.GetByID(txCtx, split.ExpenditureID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.splitRepo.MarkSettled(txCtx, tx, split.ID, now); err != nil {
		return nil, err
	}
	split.UpdatedAt = now

	if split.UserID != expenditure.PaidBy && !split.Amount.IsZero() {
		payment := &domain.Payment{
			ID:          uc.idGen.Generate(),
			FromUser:    split.UserID,
			ToUser:      expenditure.PaidBy,
			Amount:      split.Amount,
			Description: "Settlement for: " + expenditure.Description,
			Settled:     true,
			SplitID:     &split.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.paymentRepo.CreateTx(txCtx, tx, payment); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, balanceCacheKey(split.UserID))
		_ = uc.cache.Delete(ctx, balanceCacheKey(expenditure.PaidBy))
	}

	return split, nil
}

// SettlePayment marks a standalone payment as settled.
func (uc *SettlementUseCase) SettlePayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	start := time.Now()

	var settled *domain.Payment
	operation := func() error {
		p, err := uc.settlePaymentOnce(ctx, paymentID)
		if err != nil {
			return err
		}
		settled = p
		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsSettled.Inc()
		uc.metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	}

	return settled, nil
}

func (uc *SettlementUseCase) settlePaymentOnce(ctx context.Context, paymentID string) (*domain.Payment, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	payment, err := uc.paymentRepo.GetByIDForUpdate(txCtx, tx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := payment.Settle(); err != nil {
		if uc.metrics != nil {
			uc.metrics.SettlementConflicts.WithLabelValues("payment").Inc()
		}
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.paymentRepo.MarkSettled(txCtx, tx, payment.ID, now); err != nil {
		return nil, err
	}
	payment.UpdatedAt = now

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, balanceCacheKey(payment.FromUser))
		_ = uc.cache.Delete(ctx, balanceCacheKey(payment.ToUser))
	}

	return payment, nil
}
