package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/splitit/internal/adapter/http/dto"
	"github.com/iho/splitit/internal/usecase"
)

// BalanceHandler handles balance report HTTP requests.
type BalanceHandler struct {
	balanceUC *usecase.BalanceUseCase
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC *usecase.BalanceUseCase) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// Get returns the balance report for a user.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	report, err := h.balanceUC.GetBalance(r.Context(), userID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(report))
}
