package usecase

import (
	"context"
	"time"

	"github.com/iho/splitit/internal/domain"
)

// EventUseCase handles event management.
type EventUseCase struct {
	eventRepo    EventRepository
	occasionRepo OccasionRepository
	idGen        IDGenerator
}

// NewEventUseCase creates a new EventUseCase.
func NewEventUseCase(eventRepo EventRepository, occasionRepo OccasionRepository, idGen IDGenerator) *EventUseCase {
	return &EventUseCase{
		eventRepo:    eventRepo,
		occasionRepo: occasionRepo,
		idGen:        idGen,
	}
}

// CreateEventInput represents input for creating an event.
type CreateEventInput struct {
	Name        string
	Description string
	OccasionID  *string
}

// CreateEvent creates a new event, optionally attached to an occasion.
func (uc *EventUseCase) CreateEvent(ctx context.Context, input CreateEventInput) (*domain.Event, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if input.OccasionID != nil {
		if _, err := uc.occasionRepo.GetByID(ctx, *input.OccasionID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	event := &domain.Event{
		ID:          uc.idGen.Generate(),
		Name:        input.Name,
		Description: input.Description,
		OccasionID:  input.OccasionID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// GetEvent retrieves an event by ID.
func (uc *EventUseCase) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return uc.eventRepo.GetByID(ctx, id)
}

// ListEvents lists events with pagination.
func (uc *EventUseCase) ListEvents(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	limit, offset = clampPage(limit, offset)
	return uc.eventRepo.List(ctx, limit, offset)
}

// ListEventsByOccasion lists all events attached to an occasion.
func (uc *EventUseCase) ListEventsByOccasion(ctx context.Context, occasionID string) ([]*domain.Event, error) {
	if _, err := uc.occasionRepo.GetByID(ctx, occasionID); err != nil {
		return nil, err
	}
	return uc.eventRepo.ListByOccasion(ctx, occasionID)
}

// UpdateEvent updates an event's name and description.
func (uc *EventUseCase) UpdateEvent(ctx context.Context, id, name, description string) (*domain.Event, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	event, err := uc.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Name = name
	event.Description = description
	event.UpdatedAt = time.Now().UTC()

	if err := uc.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// DeleteEvent removes an event.
func (uc *EventUseCase) DeleteEvent(ctx context.Context, id string) error {
	if _, err := uc.eventRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.eventRepo.Delete(ctx, id)
}
