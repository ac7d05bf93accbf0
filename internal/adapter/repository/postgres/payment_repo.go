package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/splitit/internal/domain"
	"github.com/iho/splitit/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

const paymentColumns = `id, from_user, to_user, amount, description, settled, split_id, created_at, updated_at`

const insertPaymentSQL = `
	INSERT INTO payments (id, from_user, to_user, amount, description, settled, split_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Create inserts a payment using the pool.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	_, err := r.pool.Exec(ctx, insertPaymentSQL, paymentInsertArgs(payment)...)
	return err
}

// CreateTx inserts a payment inside the given transaction. Settlement uses
// this to record the discharging payment atomically with the split update.
func (r *PaymentRepository) CreateTx(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	pgxTx := tx.(*Tx).PgxTx()
	_, err := pgxTx.Exec(ctx, insertPaymentSQL, paymentInsertArgs(payment)...)
	return err
}

func paymentInsertArgs(payment *domain.Payment) []any {
	return []any{
		payment.ID,
		payment.FromUser,
		payment.ToUser,
		int64(payment.Amount),
		payment.Description,
		payment.Settled,
		stringPtrToPgText(payment.SplitID),
		timeToPgTimestamptz(payment.CreatedAt),
		timeToPgTimestamptz(payment.UpdatedAt),
	}
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)

	return scanPaymentRow(row)
}

// GetByIDForUpdate retrieves a payment by ID with a FOR UPDATE lock.
func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Payment, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id)

	return scanPaymentRow(row)
}

// MarkSettled flips an unsettled payment to settled with the same
// compare-and-set guard as splits.
func (r *PaymentRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE payments SET settled = TRUE, updated_at = $2
		WHERE id = $1 AND settled = FALSE`,
		id, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadySettled
	}

	return nil
}

// ListByUser lists payments where the user is sender or recipient, newest first.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE from_user = $1 OR to_user = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// ListObligationsByUser returns payment obligations where the user is the
// debtor or the creditor.
func (r *PaymentRepository) ListObligationsByUser(ctx context.Context, userID string) ([]domain.ObligationRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT from_user, to_user, amount, settled
		FROM payments
		WHERE from_user = $1 OR to_user = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanObligations(rows, domain.ObligationKindPayment)
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var (
		p         domain.Payment
		amount    int64
		splitID   pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&p.ID, &p.FromUser, &p.ToUser, &amount, &p.Description, &p.Settled, &splitID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.Amount = domain.Money(amount)
	p.SplitID = pgTextToStringPtr(splitID)
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

func scanPaymentRow(row rowScanner) (*domain.Payment, error) {
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}
