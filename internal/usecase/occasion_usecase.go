package usecase

import (
	"context"
	"time"

	"github.com/iho/splitit/internal/domain"
)

// OccasionUseCase handles occasion management and summaries.
type OccasionUseCase struct {
	occasionRepo    OccasionRepository
	eventRepo       EventRepository
	expenditureRepo ExpenditureRepository
	splitRepo       SplitRepository
	idGen           IDGenerator
}

// NewOccasionUseCase creates a new OccasionUseCase.
func NewOccasionUseCase(
	occasionRepo OccasionRepository,
	eventRepo EventRepository,
	expenditureRepo ExpenditureRepository,
	splitRepo SplitRepository,
	idGen IDGenerator,
) *OccasionUseCase {
	return &OccasionUseCase{
		occasionRepo:    occasionRepo,
		eventRepo:       eventRepo,
		expenditureRepo: expenditureRepo,
		splitRepo:       splitRepo,
		idGen:           idGen,
	}
}

// CreateOccasion creates a new occasion.
func (uc *OccasionUseCase) CreateOccasion(ctx context.Context, name, description string) (*domain.Occasion, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	occasion := &domain.Occasion{
		ID:          uc.idGen.Generate(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.occasionRepo.Create(ctx, occasion); err != nil {
		return nil, err
	}

	return occasion, nil
}

// GetOccasion retrieves an occasion by ID.
func (uc *OccasionUseCase) GetOccasion(ctx context.Context, id string) (*domain.Occasion, error) {
	return uc.occasionRepo.GetByID(ctx, id)
}

// ListOccasions lists occasions with pagination.
func (uc *OccasionUseCase) ListOccasions(ctx context.Context, limit, offset int) ([]*domain.Occasion, error) {
	limit, offset = clampPage(limit, offset)
	return uc.occasionRepo.List(ctx, limit, offset)
}

// UpdateOccasion updates an occasion's name and description.
func (uc *OccasionUseCase) UpdateOccasion(ctx context.Context, id, name, description string) (*domain.Occasion, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	occasion, err := uc.occasionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	occasion.Name = name
	occasion.Description = description
	occasion.UpdatedAt = time.Now().UTC()

	if err := uc.occasionRepo.Update(ctx, occasion); err != nil {
		return nil, err
	}

	return occasion, nil
}

// DeleteOccasion removes an occasion.
func (uc *OccasionUseCase) DeleteOccasion(ctx context.Context, id string) error {
	if _, err := uc.occasionRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.occasionRepo.Delete(ctx, id)
}

// GetSummary produces the occasion overview: total spend across all of its
// events and an outstanding balance report per involved user.
func (uc *OccasionUseCase) GetSummary(ctx context.Context, id string) (*domain.OccasionSummary, error) {
	occasion, err := uc.occasionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	events, err := uc.eventRepo.ListByOccasion(ctx, id)
	if err != nil {
		return nil, err
	}

	total, err := uc.expenditureRepo.SumByOccasion(ctx, id)
	if err != nil {
		return nil, err
	}

	records, err := uc.splitRepo.ListObligationsByOccasion(ctx, id)
	if err != nil {
		return nil, err
	}

	// Collect every user appearing on either side of an obligation, in
	// first-seen order so the summary is stable.
	seen := make(map[string]bool)
	var users []string
	for _, rec := range records {
		for _, u := range []string{rec.Debtor, rec.Creditor} {
			if !seen[u] {
				seen[u] = true
				users = append(users, u)
			}
		}
	}

	balances := make([]domain.BalanceReport, 0, len(users))
	for _, u := range users {
		balances = append(balances, domain.ComputeBalance(u, records))
	}

	return &domain.OccasionSummary{
		Occasion:          occasion,
		TotalExpenditures: total,
		TotalEvents:       len(events),
		UserBalances:      balances,
	}, nil
}
