package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/splitit/internal/adapter/http/dto"
	"github.com/iho/splitit/internal/domain"
	"github.com/iho/splitit/internal/usecase"
	"github.com/iho/splitit/internal/usecase/mocks"
)

type expenditureHandlerFixture struct {
	txManager       *mocks.MockTransactionManager
	tx              *mocks.MockTransaction
	eventRepo       *mocks.MockEventRepository
	expenditureRepo *mocks.MockExpenditureRepository
	splitRepo       *mocks.MockSplitRepository
	idGen           *mocks.MockIDGenerator
	handler         *ExpenditureHandler
}

func newExpenditureHandlerFixture(t *testing.T) *expenditureHandlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &expenditureHandlerFixture{
		txManager:       mocks.NewMockTransactionManager(ctrl),
		tx:              mocks.NewMockTransaction(ctrl),
		eventRepo:       mocks.NewMockEventRepository(ctrl),
		expenditureRepo: mocks.NewMockExpenditureRepository(ctrl),
		splitRepo:       mocks.NewMockSplitRepository(ctrl),
		idGen:           mocks.NewMockIDGenerator(ctrl),
	}

	uc := usecase.NewExpenditureUseCase(f.txManager, f.eventRepo, f.expenditureRepo, f.splitRepo, f.idGen, nil, nil)
	f.handler = NewExpenditureHandler(uc)

	return f
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestExpenditureHandler_Create_Success(t *testing.T) {
	f := newExpenditureHandlerFixture(t)

	f.eventRepo.EXPECT().GetByID(gomock.Any(), "ev-1").Return(&domain.Event{ID: "ev-1"}, nil)
	f.idGen.EXPECT().Generate().Return("01ID").Times(3)
	f.txManager.EXPECT().Begin(gomock.Any()).Return(f.tx, nil)
	f.expenditureRepo.EXPECT().Create(gomock.Any(), f.tx, gomock.Any()).Return(nil)
	f.splitRepo.EXPECT().Create(gomock.Any(), f.tx, gomock.Any()).Return(nil).Times(2)
	f.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	body, _ := json.Marshal(dto.CreateExpenditureRequest{
		EventID:      "ev-1",
		Description:  "groceries",
		PaidBy:       "alice",
		Amount:       decimal.RequireFromString("10.00"),
		SplitType:    "equal",
		Participants: []string{"alice", "bob"},
	})

	req := httptest.NewRequest(http.MethodPost, "/expenditures", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	f.handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ExpenditureResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.Amount.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected amount 10.00, got %s", resp.Amount)
	}

	if len(resp.Splits) != 2 {
		t.Fatalf("expected 2 splits, got %d", len(resp.Splits))
	}
}

func TestExpenditureHandler_Create_InvalidJSON(t *testing.T) {
	f := newExpenditureHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/expenditures", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	f.handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExpenditureHandler_Create_ValidationError(t *testing.T) {
	f := newExpenditureHandlerFixture(t)

	body, _ := json.Marshal(dto.CreateExpenditureRequest{
		EventID:      "ev-1",
		Description:  "groceries",
		PaidBy:       "alice",
		Amount:       decimal.RequireFromString("10.00"),
		SplitType:    "equal",
		Participants: []string{},
	})

	req := httptest.NewRequest(http.MethodPost, "/expenditures", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	f.handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExpenditureHandler_Create_EventNotFound(t *testing.T) {
	f := newExpenditureHandlerFixture(t)

	f.eventRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, domain.ErrEventNotFound)

	body, _ := json.Marshal(dto.CreateExpenditureRequest{
		EventID:      "missing",
		Description:  "groceries",
		PaidBy:       "alice",
		Amount:       decimal.RequireFromString("10.00"),
		SplitType:    "equal",
		Participants: []string{"alice", "bob"},
	})

	req := httptest.NewRequest(http.MethodPost, "/expenditures", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	f.handler.Create(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExpenditureHandler_Get_NotFound(t *testing.T) {
	f := newExpenditureHandlerFixture(t)

	f.expenditureRepo.EXPECT().GetByID(gomock.Any(), "exp-1").Return(nil, domain.ErrExpenditureNotFound)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/expenditures/exp-1", nil), "id", "exp-1")
	rec := httptest.NewRecorder()

	f.handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExpenditureHandler_Get_Success(t *testing.T) {
	f := newExpenditureHandlerFixture(t)

	expenditure := &domain.Expenditure{
		ID:        "exp-1",
		EventID:   "ev-1",
		PaidBy:    "alice",
		Amount:    domain.Money(1000),
		SplitType: domain.SplitTypeEqual,
	}
	splits := []*domain.Split{
		{ID: "sp-1", ExpenditureID: "exp-1", UserID: "alice", Amount: domain.Money(500)},
		{ID: "sp-2", ExpenditureID: "exp-1", UserID: "bob", Amount: domain.Money(500)},
	}

	f.expenditureRepo.EXPECT().GetByID(gomock.Any(), "exp-1").Return(expenditure, nil)
	f.splitRepo.EXPECT().ListByExpenditure(gomock.Any(), "exp-1").Return(splits, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/expenditures/exp-1", nil), "id", "exp-1")
	rec := httptest.NewRecorder()

	f.handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ExpenditureResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.ID != "exp-1" || len(resp.Splits) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
