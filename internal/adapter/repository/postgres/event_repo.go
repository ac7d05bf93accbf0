package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/splitit/internal/domain"
)

// EventRepository implements usecase.EventRepository.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, name, description, occasion_id, created_at, updated_at`

// Create inserts an event.
func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO events (id, name, description, occasion_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID,
		event.Name,
		event.Description,
		stringPtrToPgText(event.OccasionID),
		timeToPgTimestamptz(event.CreatedAt),
		timeToPgTimestamptz(event.UpdatedAt),
	)

	return err
}

// GetByID retrieves an event by ID.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+eventColumns+` FROM events WHERE id = $1`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

// List lists events with pagination, newest first.
func (r *EventRepository) List(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListByOccasion lists every event attached to an occasion.
func (r *EventRepository) ListByOccasion(ctx context.Context, occasionID string) ([]*domain.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE occasion_id = $1
		ORDER BY created_at`, occasionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Update updates an event's name and description.
func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events SET name = $2, description = $3, updated_at = $4
		WHERE id = $1`,
		event.ID,
		event.Name,
		event.Description,
		timeToPgTimestamptz(event.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}

	return nil
}

// Delete removes an event. Its expenditures are removed by the cascade.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}

	return nil
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var (
		e          domain.Event
		occasionID pgtype.Text
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)

	err := row.Scan(&e.ID, &e.Name, &e.Description, &occasionID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	e.OccasionID = pgTextToStringPtr(occasionID)
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}

func scanEvents(rows pgx.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
