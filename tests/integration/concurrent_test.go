package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	postgresRepo "github.com/iho/splitit/internal/adapter/repository/postgres"
	"github.com/iho/splitit/internal/domain"
	"github.com/iho/splitit/internal/usecase"
	"github.com/iho/splitit/tests/testutil"
)

func TestConcurrentSettlement(t *testing.T) {
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
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(zerolog.Nop())

	expenditureUC := usecase.NewExpenditureUseCase(txManager, eventRepo, expenditureRepo, splitRepo, idGen, nil, nil)
	settlementUC := usecase.NewSettlementUseCase(txManager, expenditureRepo, splitRepo, paymentRepo, idGen, retrier, nil, nil)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, idGen, nil, nil)

	t.Run("concurrent settle attempts on one split produce one winner", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		event := testDB.CreateTestEvent(ctx, "trip", nil)

		_, splits, err := expenditureUC.CreateExpenditure(ctx, usecase.CreateExpenditureInput{
			EventID:      event.ID,
			Description:  "fuel",
			PaidBy:       "alice",
			Amount:       domain.Money(900),
			SplitType:    domain.SplitTypeEqual,
			Participants: []string{"alice", "bob", "carol"},
		})
		if err != nil {
			t.Fatalf("failed to create expenditure: %v", err)
		}

		var target *domain.Split
		for _, s := range splits {
			if s.UserID == "bob" {
				target = s
				break
			}
		}
		if target == nil {
			t.Fatal("expected a split for bob")
		}

		numAttempts := 20

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			settledCount atomic.Int32
		)

		wg.Add(numAttempts)
		for range numAttempts {
			go func() {
				defer wg.Done()

				_, err := settlementUC.SettleSplit(ctx, target.ID)
				switch {
				case err == nil:
					successCount.Add(1)
				case errors.Is(err, domain.ErrAlreadySettled):
					settledCount.Add(1)
				default:
					t.Errorf("unexpected settle error: %v", err)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != 1 {
			t.Errorf("expected exactly one winner, got %d", successCount.Load())
		}
		if settledCount.Load() != int32(numAttempts-1) {
			t.Errorf("expected %d already-settled errors, got %d", numAttempts-1, settledCount.Load())
		}

		// Exactly one settlement payment was recorded for the split
		var paymentCount int
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE split_id = $1`, target.ID).Scan(&paymentCount); err != nil {
			t.Fatalf("failed to count payments: %v", err)
		}
		if paymentCount != 1 {
			t.Errorf("expected exactly one linked payment, got %d", paymentCount)
		}
	})

	t.Run("settling the payer's own share records no payment", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		event := testDB.CreateTestEvent(ctx, "trip", nil)

		_, splits, err := expenditureUC.CreateExpenditure(ctx, usecase.CreateExpenditureInput{
			EventID:      event.ID,
			Description:  "fuel",
			PaidBy:       "alice",
			Amount:       domain.Money(600),
			SplitType:    domain.SplitTypeEqual,
			Participants: []string{"alice", "bob"},
		})
		if err != nil {
			t.Fatalf("failed to create expenditure: %v", err)
		}

		var own *domain.Split
		for _, s := range splits {
			if s.UserID == "alice" {
				own = s
				break
			}
		}

		settled, err := settlementUC.SettleSplit(ctx, own.ID)
		if err != nil {
			t.Fatalf("failed to settle payer's split: %v", err)
		}
		if !settled.Settled {
			t.Error("expected split to be settled")
		}

		var paymentCount int
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&paymentCount); err != nil {
			t.Fatalf("failed to count payments: %v", err)
		}
		if paymentCount != 0 {
			t.Errorf("expected no payments, got %d", paymentCount)
		}
	})

	t.Run("settling a zero custom share records no payment", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		event := testDB.CreateTestEvent(ctx, "trip", nil)

		_, splits, err := expenditureUC.CreateExpenditure(ctx, usecase.CreateExpenditureInput{
			EventID:       event.ID,
			Description:   "fuel",
			PaidBy:        "alice",
			Amount:        domain.Money(1000),
			SplitType:     domain.SplitTypeCustom,
			Participants:  []string{"alice", "bob"},
			CustomAmounts: []domain.Money{1000, 0},
		})
		if err != nil {
			t.Fatalf("failed to create expenditure: %v", err)
		}

		var zero *domain.Split
		for _, s := range splits {
			if s.UserID == "bob" {
				zero = s
				break
			}
		}
		if zero == nil || !zero.Amount.IsZero() {
			t.Fatal("expected a zero split for bob")
		}

		settled, err := settlementUC.SettleSplit(ctx, zero.ID)
		if err != nil {
			t.Fatalf("failed to settle zero split: %v", err)
		}
		if !settled.Settled {
			t.Error("expected split to be settled")
		}

		var paymentCount int
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&paymentCount); err != nil {
			t.Fatalf("failed to count payments: %v", err)
		}
		if paymentCount != 0 {
			t.Errorf("expected no payments, got %d", paymentCount)
		}
	})

	t.Run("concurrent settle attempts on one payment produce one winner", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		payment, err := paymentUC.CreatePayment(ctx, usecase.CreatePaymentInput{
			FromUser: "bob",
			ToUser:   "alice",
			Amount:   domain.Money(1500),
		})
		if err != nil {
			t.Fatalf("failed to create payment: %v", err)
		}

		numAttempts := 10

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		wg.Add(numAttempts)
		for range numAttempts {
			go func() {
				defer wg.Done()

				if _, err := settlementUC.SettlePayment(ctx, payment.ID); err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != 1 {
			t.Errorf("expected exactly one winner, got %d", successCount.Load())
		}
	})
}
