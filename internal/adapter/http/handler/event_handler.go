package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/splitit/internal/adapter/http/dto"
	"github.com/iho/splitit/internal/usecase"
)

// EventHandler handles event-related HTTP requests.
type EventHandler struct {
	eventUC *usecase.EventUseCase
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventUC *usecase.EventUseCase) *EventHandler {
	return &EventHandler{eventUC: eventUC}
}

// Create creates a new event.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	event, err := h.eventUC.CreateEvent(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create event", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.EventFromDomain(event))
}

// Get retrieves an event by ID.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing event ID", "")
		return
	}

	event, err := h.eventUC.GetEvent(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get event", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EventFromDomain(event))
}

// List lists events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	events, err := h.eventUC.ListEvents(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EventsFromDomain(events))
}

// ListByOccasion lists events attached to an occasion.
func (h *EventHandler) ListByOccasion(w http.ResponseWriter, r *http.Request) {
	occasionID := chi.URLParam(r, "id")
	if occasionID == "" {
		writeError(w, http.StatusBadRequest, "missing occasion ID", "")
		return
	}

	events, err := h.eventUC.ListEventsByOccasion(r.Context(), occasionID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list events", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EventsFromDomain(events))
}

// Update updates an event.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing event ID", "")
		return
	}

	var req dto.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	event, err := h.eventUC.UpdateEvent(r.Context(), id, req.Name, req.Description)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update event", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EventFromDomain(event))
}

// Delete removes an event.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing event ID", "")
		return
	}

	if err := h.eventUC.DeleteEvent(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete event", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
