package usecase

import (
	"context"
	"time"

	"github.com/iho/splitit/internal/domain"
	"github.com/iho/splitit/internal/infrastructure/metrics"
)

// PaymentUseCase handles standalone payment recording.
type PaymentUseCase struct {
	paymentRepo PaymentRepository
	idGen       IDGenerator
	cache       Cache
	metrics     *metrics.Metrics
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	paymentRepo PaymentRepository,
	idGen IDGenerator,
	cache Cache,
	metrics *metrics.Metrics,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo: paymentRepo,
		idGen:       idGen,
		cache:       cache,
		metrics:     metrics,
	}
}

// CreatePaymentInput represents input for recording a payment.
type CreatePaymentInput struct {
	FromUser    string
	ToUser      string
	Amount      domain.Money
	Description string
}

// CreatePayment records a payment between two users. It starts unsettled;
// settlement is a separate step.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error) {
	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:          uc.idGen.Generate(),
		FromUser:    input.FromUser,
		ToUser:      input.ToUser,
		Amount:      input.Amount,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, balanceCacheKey(payment.FromUser))
		_ = uc.cache.Delete(ctx, balanceCacheKey(payment.ToUser))
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsCreated.Inc()
	}

	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// ListPaymentsByUser lists payments where the user is sender or recipient.
func (uc *PaymentUseCase) ListPaymentsByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Payment, error) {
	limit, offset = clampPage(limit, offset)
	return uc.paymentRepo.ListByUser(ctx, userID, limit, offset)
}
