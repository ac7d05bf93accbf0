package integration

import (
	"context"
	"errors"
	"testing"

	postgresRepo "github.com/iho/splitit/internal/adapter/repository/postgres"
	"github.com/iho/splitit/internal/domain"
	"github.com/iho/splitit/internal/usecase"
	"github.com/iho/splitit/tests/testutil"
)

func TestExpenditureAllocation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	txManager := postgresRepo.NewTxManager(pool)
	eventRepo := postgresRepo.NewEventRepository(pool)
	expenditureRepo := postgresRepo.NewExpenditureRepository(pool)
	splitRepo := postgresRepo.NewSplitRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	expenditureUC := usecase.NewExpenditureUseCase(txManager, eventRepo, expenditureRepo, splitRepo, idGen, nil, nil)

	t.Run("equal split distributes remainder to earliest participants", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		event := testDB.CreateTestEvent(ctx, "dinner", nil)

		expenditure, splits, err := expenditureUC.CreateExpenditure(ctx, usecase.CreateExpenditureInput{
			EventID:      event.ID,
			Description:  "dinner",
			PaidBy:       "alice",
			Amount:       domain.Money(1000),
			SplitType:    domain.SplitTypeEqual,
			Participants: []string{"alice", "bob", "carol"},
		})
		if err != nil {
			t.Fatalf("failed to create expenditure: %v", err)
		}

		if len(splits) != 3 {
			t.Fatalf("expected 3 splits, got %d", len(splits))
		}

		var sum domain.Money
		for _, s := range splits {
			sum += s.Amount
		}
		if sum != expenditure.Amount {
			t.Errorf("expected splits to sum to %d, got %d", expenditure.Amount, sum)
		}

		// 1000 over 3 participants: 334, 333, 333
		if splits[0].Amount != 334 || splits[1].Amount != 333 || splits[2].Amount != 333 {
			t.Errorf("unexpected allocation: %d %d %d", splits[0].Amount, splits[1].Amount, splits[2].Amount)
		}

		// Splits are persisted
		persisted, err := splitRepo.ListByExpenditure(ctx, expenditure.ID)
		if err != nil {
			t.Fatalf("failed to list splits: %v", err)
		}
		if len(persisted) != 3 {
			t.Errorf("expected 3 persisted splits, got %d", len(persisted))
		}
	})

	t.Run("custom split mismatch rejects the whole expenditure", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		event := testDB.CreateTestEvent(ctx, "dinner", nil)

		_, _, err := expenditureUC.CreateExpenditure(ctx, usecase.CreateExpenditureInput{
			EventID:       event.ID,
			Description:   "dinner",
			PaidBy:        "alice",
			Amount:        domain.Money(1000),
			SplitType:     domain.SplitTypeCustom,
			Participants:  []string{"alice", "bob"},
			CustomAmounts: []domain.Money{600, 300},
		})
		if !errors.Is(err, domain.ErrSplitMismatch) {
			t.Fatalf("expected split mismatch, got %v", err)
		}

		var mismatch *domain.SplitMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected SplitMismatchError, got %T", err)
		}
		if mismatch.Discrepancy() != 100 {
			t.Errorf("expected discrepancy 100, got %d", mismatch.Discrepancy())
		}

		// Nothing was persisted
		expenditures, err := expenditureRepo.ListByEvent(ctx, event.ID, 10, 0)
		if err != nil {
			t.Fatalf("failed to list expenditures: %v", err)
		}
		if len(expenditures) != 0 {
			t.Errorf("expected no expenditures, got %d", len(expenditures))
		}
	})

	t.Run("deleting an expenditure cascades to its splits", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		event := testDB.CreateTestEvent(ctx, "dinner", nil)

		expenditure, _, err := expenditureUC.CreateExpenditure(ctx, usecase.CreateExpenditureInput{
			EventID:      event.ID,
			Description:  "dinner",
			PaidBy:       "alice",
			Amount:       domain.Money(500),
			SplitType:    domain.SplitTypeEqual,
			Participants: []string{"alice", "bob"},
		})
		if err != nil {
			t.Fatalf("failed to create expenditure: %v", err)
		}

		if err := expenditureUC.DeleteExpenditure(ctx, expenditure.ID); err != nil {
			t.Fatalf("failed to delete expenditure: %v", err)
		}

		splits, err := splitRepo.ListByExpenditure(ctx, expenditure.ID)
		if err != nil {
			t.Fatalf("failed to list splits: %v", err)
		}
		if len(splits) != 0 {
			t.Errorf("expected splits to be removed, got %d", len(splits))
		}
	})
}
