package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/splitit/internal/domain"
)

// OccasionRepository implements usecase.OccasionRepository.
type OccasionRepository struct {
	pool *pgxpool.Pool
}

// NewOccasionRepository creates a new OccasionRepository.
func NewOccasionRepository(pool *pgxpool.Pool) *OccasionRepository {
	return &OccasionRepository{pool: pool}
}

// Create inserts an occasion.
func (r *OccasionRepository) Create(ctx context.Context, occasion *domain.Occasion) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO occasions (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		occasion.ID,
		occasion.Name,
		occasion.Description,
		timeToPgTimestamptz(occasion.CreatedAt),
		timeToPgTimestamptz(occasion.UpdatedAt),
	)

	return err
}

// GetByID retrieves an occasion by ID.
func (r *OccasionRepository) GetByID(ctx context.Context, id string) (*domain.Occasion, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM occasions WHERE id = $1`, id)

	occasion, err := scanOccasion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOccasionNotFound
		}
		return nil, err
	}

	return occasion, nil
}

// List lists occasions with pagination, newest first.
func (r *OccasionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Occasion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM occasions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var occasions []*domain.Occasion
	for rows.Next() {
		o, err := scanOccasion(rows)
		if err != nil {
			return nil, err
		}
		occasions = append(occasions, o)
	}

	return occasions, rows.Err()
}

// Update updates an occasion's name and description.
func (r *OccasionRepository) Update(ctx context.Context, occasion *domain.Occasion) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE occasions SET name = $2, description = $3, updated_at = $4
		WHERE id = $1`,
		occasion.ID,
		occasion.Name,
		occasion.Description,
		timeToPgTimestamptz(occasion.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOccasionNotFound
	}

	return nil
}

// Delete removes an occasion. Attached events keep their rows with a
// cleared occasion reference.
func (r *OccasionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM occasions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOccasionNotFound
	}

	return nil
}

func scanOccasion(row rowScanner) (*domain.Occasion, error) {
	var (
		o         domain.Occasion
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&o.ID, &o.Name, &o.Description, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}
