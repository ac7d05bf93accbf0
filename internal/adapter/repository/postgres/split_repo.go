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

// SplitRepository implements usecase.SplitRepository.
type SplitRepository struct {
	pool *pgxpool.Pool
}

// NewSplitRepository creates a new SplitRepository.
func NewSplitRepository(pool *pgxpool.Pool) *SplitRepository {
	return &SplitRepository{pool: pool}
}

const splitColumns = `id, expenditure_id, user_id, amount, settled, created_at, updated_at`

// Create inserts a split inside the given transaction.
func (r *SplitRepository) Create(ctx context.Context, tx usecase.Transaction, split *domain.Split) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO splits (id, expenditure_id, user_id, amount, settled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		split.ID,
		split.ExpenditureID,
		split.UserID,
		int64(split.Amount),
		split.Settled,
		timeToPgTimestamptz(split.CreatedAt),
		timeToPgTimestamptz(split.UpdatedAt),
	)

	return err
}

// GetByID retrieves a split by ID.
func (r *SplitRepository) GetByID(ctx context.Context, id string) (*domain.Split, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+splitColumns+` FROM splits WHERE id = $1`, id)

	return scanSplitRow(row)
}

// GetByIDForUpdate retrieves a split by ID with a FOR UPDATE lock.
func (r *SplitRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Split, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+splitColumns+` FROM splits WHERE id = $1 FOR UPDATE`, id)

	return scanSplitRow(row)
}

// MarkSettled flips an unsettled split to settled. The settled guard in the
// WHERE clause makes the update a compare-and-set: if the row was already
// settled the update matches nothing and ErrAlreadySettled is returned.
func (r *SplitRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE splits SET settled = TRUE, updated_at = $2
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

// ListByExpenditure lists the splits of an expenditure in insertion order.
func (r *SplitRepository) ListByExpenditure(ctx context.Context, expenditureID string) ([]*domain.Split, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+splitColumns+` FROM splits
		WHERE expenditure_id = $1
		ORDER BY id`, expenditureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var splits []*domain.Split
	for rows.Next() {
		s, err := scanSplit(rows)
		if err != nil {
			return nil, err
		}
		splits = append(splits, s)
	}

	return splits, rows.Err()
}

// ListObligationsByUser returns split obligations where the user is the
// debtor or the creditor.
func (r *SplitRepository) ListObligationsByUser(ctx context.Context, userID string) ([]domain.ObligationRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.user_id, e.paid_by, s.amount, s.settled
		FROM splits s
		JOIN expenditures e ON e.id = s.expenditure_id
		WHERE s.user_id = $1 OR e.paid_by = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanObligations(rows, domain.ObligationKindSplit)
}

// ListObligationsByOccasion returns split obligations for every expenditure
// under an occasion's events.
func (r *SplitRepository) ListObligationsByOccasion(ctx context.Context, occasionID string) ([]domain.ObligationRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.user_id, e.paid_by, s.amount, s.settled
		FROM splits s
		JOIN expenditures e ON e.id = s.expenditure_id
		JOIN events ev ON ev.id = e.event_id
		WHERE ev.occasion_id = $1`, occasionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanObligations(rows, domain.ObligationKindSplit)
}

func scanSplit(row rowScanner) (*domain.Split, error) {
	var (
		s         domain.Split
		amount    int64
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&s.ID, &s.ExpenditureID, &s.UserID, &amount, &s.Settled, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	s.Amount = domain.Money(amount)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func scanSplitRow(row rowScanner) (*domain.Split, error) {
	s, err := scanSplit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSplitNotFound
		}
		return nil, err
	}
	return s, nil
}

func scanObligations(rows pgx.Rows, kind domain.ObligationKind) ([]domain.ObligationRecord, error) {
	var records []domain.ObligationRecord
	for rows.Next() {
		var (
			rec    domain.ObligationRecord
			amount int64
		)
		if err := rows.Scan(&rec.Debtor, &rec.Creditor, &amount, &rec.Settled); err != nil {
			return nil, err
		}
		rec.Kind = kind
		rec.Amount = domain.Money(amount)
		records = append(records, rec)
	}

	return records, rows.Err()
}
