package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/splitit/internal/adapter/http/dto"
	"github.com/iho/splitit/internal/usecase"
)

// ExpenditureHandler handles expenditure-related HTTP requests.
type ExpenditureHandler struct {
	expenditureUC *usecase.ExpenditureUseCase
}

// NewExpenditureHandler creates a new ExpenditureHandler.
func NewExpenditureHandler(expenditureUC *usecase.ExpenditureUseCase) *ExpenditureHandler {
	return &ExpenditureHandler{expenditureUC: expenditureUC}
}

// Create records a new expenditure with its splits.
func (h *ExpenditureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenditureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	expenditure, splits, err := h.expenditureUC.CreateExpenditure(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create expenditure", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenditureFromDomain(expenditure, splits))
}

// Get retrieves an expenditure with its splits.
func (h *ExpenditureHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expenditure ID", "")
		return
	}

	expenditure, splits, err := h.expenditureUC.GetExpenditure(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get expenditure", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenditureFromDomain(expenditure, splits))
}

// List lists expenditures.
func (h *ExpenditureHandler) List(w http.ResponseWriter, r *http.Request) {
	expenditures, err := h.expenditureUC.ListExpenditures(r.Context(), usecase.ListExpendituresInput{
		EventID: r.URL.Query().Get("event_id"),
		Limit:   parseIntQuery(r, "limit", 20),
		Offset:  parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list expenditures", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpendituresFromDomain(expenditures))
}

// ListByEvent lists expenditures for an event.
func (h *ExpenditureHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		writeError(w, http.StatusBadRequest, "missing event ID", "")
		return
	}

	expenditures, err := h.expenditureUC.ListExpenditures(r.Context(), usecase.ListExpendituresInput{
		EventID: eventID,
		Limit:   parseIntQuery(r, "limit", 20),
		Offset:  parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list expenditures", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpendituresFromDomain(expenditures))
}

// Delete removes an expenditure and its splits.
func (h *ExpenditureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expenditure ID", "")
		return
	}

	if err := h.expenditureUC.DeleteExpenditure(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete expenditure", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
