package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/splitit/internal/adapter/http/dto"
	"github.com/iho/splitit/internal/usecase"
)

// SettlementHandler handles settlement HTTP requests.
type SettlementHandler struct {
	settlementUC *usecase.SettlementUseCase
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC *usecase.SettlementUseCase) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// SettleSplit marks a split as settled.
func (h *SettlementHandler) SettleSplit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing split ID", "")
		return
	}

	split, err := h.settlementUC.SettleSplit(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to settle split", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SplitFromDomain(split))
}

// SettlePayment marks a payment as settled.
func (h *SettlementHandler) SettlePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	payment, err := h.settlementUC.SettlePayment(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to settle payment", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}
