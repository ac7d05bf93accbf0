package usecase

import (
	"context"
	"time"

	"github.com/iho/splitit/internal/domain"
)

// OccasionRepository defines data access for occasions.
type OccasionRepository interface {
	Create(ctx context.Context, occasion *domain.Occasion) error
	GetByID(ctx context.Context, id string) (*domain.Occasion, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Occasion, error)
	Update(ctx context.Context, occasion *domain.Occasion) error
	Delete(ctx context.Context, id string) error
}

// EventRepository defines data access for events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Event, error)
	ListByOccasion(ctx context.Context, occasionID string) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
}

// ExpenditureRepository defines data access for expenditures.
type ExpenditureRepository interface {
	Create(ctx context.Context, tx Transaction, expenditure *domain.Expenditure) error
	GetByID(ctx context.Context, id string) (*domain.Expenditure, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Expenditure, error)
	ListByEvent(ctx context.Context, eventID string, limit, offset int) ([]*domain.Expenditure, error)
	Delete(ctx context.Context, id string) error
	SumByOccasion(ctx context.Context, occasionID string) (domain.Money, error)
}

// SplitRepository defines data access for expenditure splits.
type SplitRepository interface {
	Create(ctx context.Context, tx Transaction, split *domain.Split) error
	GetByID(ctx context.Context, id string) (*domain.Split, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Split, error)
	// MarkSettled flips settled=false to true for the given split. The update
	// is a compare-and-set (WHERE settled = FALSE); it returns
	// domain.ErrAlreadySettled when the guard matches no row, so exactly one
	// of two concurrent settlement attempts can succeed.
	MarkSettled(ctx context.Context, tx Transaction, id string, updatedAt time.Time) error
	ListByExpenditure(ctx context.Context, expenditureID string) ([]*domain.Split, error)
	ListObligationsByUser(ctx context.Context, userID string) ([]domain.ObligationRecord, error)
	ListObligationsByOccasion(ctx context.Context, occasionID string) ([]domain.ObligationRecord, error)
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	CreateTx(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Payment, error)
	// MarkSettled carries the same compare-and-set contract as
	// SplitRepository.MarkSettled.
	MarkSettled(ctx context.Context, tx Transaction, id string, updatedAt time.Time) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Payment, error)
	ListObligationsByUser(ctx context.Context, userID string) ([]domain.ObligationRecord, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage errors. Each attempt must
// re-read any state it depends on; settlement relies on this so a retry
// observes AlreadySettled instead of settling twice.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
