package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/splitit/internal/domain"
	"github.com/iho/splitit/internal/usecase"
)

// ExpenditureRepository implements usecase.ExpenditureRepository.
type ExpenditureRepository struct {
	pool *pgxpool.Pool
}

// NewExpenditureRepository creates a new ExpenditureRepository.
func NewExpenditureRepository(pool *pgxpool.Pool) *ExpenditureRepository {
	return &ExpenditureRepository{pool: pool}
}

const expenditureColumns = `id, event_id, description, paid_by, amount, split_type, created_at, updated_at`

// Create inserts an expenditure inside the given transaction.
func (r *ExpenditureRepository) Create(ctx context.Context, tx usecase.Transaction, expenditure *domain.Expenditure) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO expenditures (id, event_id, description, paid_by, amount, split_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		expenditure.ID,
		expenditure.EventID,
		expenditure.Description,
		expenditure.PaidBy,
		int64(expenditure.Amount),
		string(expenditure.SplitType),
		timeToPgTimestamptz(expenditure.CreatedAt),
		timeToPgTimestamptz(expenditure.UpdatedAt),
	)

	return err
}

// GetByID retrieves an expenditure by ID.
func (r *ExpenditureRepository) GetByID(ctx context.Context, id string) (*domain.Expenditure, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+expenditureColumns+` FROM expenditures WHERE id = $1`, id)

	expenditure, err := scanExpenditure(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenditureNotFound
		}
		return nil, err
	}

	return expenditure, nil
}

// List lists expenditures with pagination, newest first.
func (r *ExpenditureRepository) List(ctx context.Context, limit, offset int) ([]*domain.Expenditure, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+expenditureColumns+` FROM expenditures
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExpenditures(rows)
}

// ListByEvent lists expenditures for an event, newest first.
func (r *ExpenditureRepository) ListByEvent(ctx context.Context, eventID string, limit, offset int) ([]*domain.Expenditure, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+expenditureColumns+` FROM expenditures
		WHERE event_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, eventID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExpenditures(rows)
}

// Delete removes an expenditure. Splits are removed by the cascade.
func (r *ExpenditureRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenditures WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenditureNotFound
	}
	return nil
}

// SumByOccasion totals expenditure amounts across all events of an occasion.
func (r *ExpenditureRepository) SumByOccasion(ctx context.Context, occasionID string) (domain.Money, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(e.amount), 0)
		FROM expenditures e
		JOIN events ev ON ev.id = e.event_id
		WHERE ev.occasion_id = $1`, occasionID).Scan(&total)
	if err != nil {
		return 0, err
	}

	return domain.Money(total), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpenditure(row rowScanner) (*domain.Expenditure, error) {
	var (
		e         domain.Expenditure
		amount    int64
		splitType string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&e.ID, &e.EventID, &e.Description, &e.PaidBy, &amount, &splitType, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	e.Amount = domain.Money(amount)
	e.SplitType = domain.SplitType(splitType)
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}

func scanExpenditures(rows pgx.Rows) ([]*domain.Expenditure, error) {
	var expenditures []*domain.Expenditure
	for rows.Next() {
		e, err := scanExpenditure(rows)
		if err != nil {
			return nil, err
		}
		expenditures = append(expenditures, e)
	}

	return expenditures, rows.Err()
}
