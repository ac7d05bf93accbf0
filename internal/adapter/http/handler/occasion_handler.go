package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/splitit/internal/adapter/http/dto"
	"github.com/iho/splitit/internal/usecase"
)

// OccasionHandler handles occasion-related HTTP requests.
type OccasionHandler struct {
	occasionUC *usecase.OccasionUseCase
}

// NewOccasionHandler creates a new OccasionHandler.
func NewOccasionHandler(occasionUC *usecase.OccasionUseCase) *OccasionHandler {
	return &OccasionHandler{occasionUC: occasionUC}
}

// Create creates a new occasion.
func (h *OccasionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOccasionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	occasion, err := h.occasionUC.CreateOccasion(r.Context(), req.Name, req.Description)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create occasion", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.OccasionFromDomain(occasion))
}

// Get retrieves an occasion by ID.
func (h *OccasionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing occasion ID", "")
		return
	}

	occasion, err := h.occasionUC.GetOccasion(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get occasion", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.OccasionFromDomain(occasion))
}

// List lists occasions.
func (h *OccasionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	occasions, err := h.occasionUC.ListOccasions(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list occasions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.OccasionsFromDomain(occasions))
}

// Update updates an occasion.
func (h *OccasionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing occasion ID", "")
		return
	}

	var req dto.UpdateOccasionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	occasion, err := h.occasionUC.UpdateOccasion(r.Context(), id, req.Name, req.Description)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update occasion", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.OccasionFromDomain(occasion))
}

// Delete removes an occasion.
func (h *OccasionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing occasion ID", "")
		return
	}

	if err := h.occasionUC.DeleteOccasion(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete occasion", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary returns the occasion overview with per-user balances.
func (h *OccasionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing occasion ID", "")
		return
	}

	summary, err := h.occasionUC.GetSummary(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build summary", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}
