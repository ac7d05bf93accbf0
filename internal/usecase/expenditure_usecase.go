package usecase

import (
	"context"
	"time"

	"github.com/iho/splitit/internal/domain"
	"github.com/iho/splitit/internal/infrastructure/metrics"
)

// ExpenditureUseCase handles expenditure recording and allocation.
type ExpenditureUseCase struct {
	txManager       TransactionManager
	eventRepo       EventRepository
	expenditureRepo ExpenditureRepository
	splitRepo       SplitRepository
	idGen           IDGenerator
	cache           Cache
	metrics         *metrics.Metrics
}

// NewExpenditureUseCase creates a new ExpenditureUseCase.
func NewExpenditureUseCase(
	txManager TransactionManager,
	eventRepo EventRepository,
	expenditureRepo ExpenditureRepository,
	splitRepo SplitRepository,
	idGen IDGenerator,
	cache Cache,
	metrics *metrics.Metrics,
) *ExpenditureUseCase {
	return &ExpenditureUseCase{
		txManager:       txManager,
		eventRepo:       eventRepo,
		expenditureRepo: expenditureRepo,
		splitRepo:       splitRepo,
		idGen:           idGen,
		cache:           cache,
		metrics:         metrics,
	}
}

// CreateExpenditureInput represents input for recording an expenditure.
type CreateExpenditureInput struct {
	EventID       string
	Description   string
	PaidBy        string
	Amount        domain.Money
	SplitType     domain.SplitType
	Participants  []string
	CustomAmounts []domain.Money
}

// CreateExpenditure validates the proposal, allocates per-participant splits
// and persists the expenditure together with its splits atomically. Splits
// are never created outside this path.
func (uc *ExpenditureUseCase) CreateExpenditure(ctx context.Context, input CreateExpenditureInput) (*domain.Expenditure, []*domain.Split, error) {
	proposal := &domain.NewExpenditure{
		EventID:       input.EventID,
		Description:   input.Description,
		PaidBy:        input.PaidBy,
		Amount:        input.Amount,
		SplitType:     input.SplitType,
		Participants:  input.Participants,
		CustomAmounts: input.CustomAmounts,
	}

	if err := proposal.Validate(); err != nil {
		return nil, nil, err
	}

	if _, err := uc.eventRepo.GetByID(ctx, input.EventID); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	expenditure := &domain.Expenditure{
		ID:          uc.idGen.Generate(),
		EventID:     input.EventID,
		Description: input.Description,
		PaidBy:      input.PaidBy,
		Amount:      input.Amount,
		SplitType:   input.SplitType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	splits, err := domain.AllocateSplits(expenditure.ID, input.Amount, input.SplitType, input.Participants, input.CustomAmounts)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.AllocationErrors.WithLabelValues(errorType(err)).Inc()
		}
		return nil, nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.expenditureRepo.Create(txCtx, tx, expenditure); err != nil {
		return nil, nil, err
	}

	for _, split := range splits {
		split.ID = uc.idGen.Generate()
		split.CreatedAt = now
		split.UpdatedAt = now

		if err := uc.splitRepo.Create(txCtx, tx, split); err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, nil, err
	}

	uc.invalidateBalances(ctx, expenditure, splits)

	if uc.metrics != nil {
		uc.metrics.ExpendituresCreated.Inc()
		uc.metrics.SplitsAllocated.Add(float64(len(splits)))
		uc.metrics.ExpenditureAmount.Observe(float64(expenditure.Amount))
	}

	return expenditure, splits, nil
}

// GetExpenditure retrieves an expenditure with its splits.
func (uc *ExpenditureUseCase) GetExpenditure(ctx context.Context, id string) (*domain.Expenditure, []*domain.Split, error) {
	expenditure, err := uc.expenditureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	splits, err := uc.splitRepo.ListByExpenditure(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return expenditure, splits, nil
}

// ListExpendituresInput represents input for listing expenditures.
type ListExpendituresInput struct {
	EventID string
	Limit   int
	Offset  int
}

// ListExpenditures lists expenditures, optionally scoped to an event.
func (uc *ExpenditureUseCase) ListExpenditures(ctx context.Context, input ListExpendituresInput) ([]*domain.Expenditure, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	if input.EventID != "" {
		return uc.expenditureRepo.ListByEvent(ctx, input.EventID, limit, offset)
	}

	return uc.expenditureRepo.List(ctx, limit, offset)
}

// DeleteExpenditure removes an expenditure; its splits go with it.
func (uc *ExpenditureUseCase) DeleteExpenditure(ctx context.Context, id string) error {
	expenditure, err := uc.expenditureRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	splits, err := uc.splitRepo.ListByExpenditure(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.expenditureRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateBalances(ctx, expenditure, splits)

	if uc.metrics != nil {
		uc.metrics.ExpendituresDeleted.Inc()
	}

	return nil
}

func (uc *ExpenditureUseCase) invalidateBalances(ctx context.Context, expenditure *domain.Expenditure, splits []*domain.Split) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, balanceCacheKey(expenditure.PaidBy))
	for _, split := range splits {
		if split.UserID == expenditure.PaidBy {
			continue
		}
		_ = uc.cache.Delete(ctx, balanceCacheKey(split.UserID))
	}
}
