package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/splitit/internal/domain"
	"github.com/iho/splitit/internal/usecase"
)

// CreateOccasionRequest represents a request to create an occasion.
type CreateOccasionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateOccasionRequest represents a request to update an occasion.
type UpdateOccasionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateEventRequest represents a request to create an event.
type CreateEventRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	OccasionID  *string `json:"occasion_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEventRequest) ToUseCaseInput() usecase.CreateEventInput {
	return usecase.CreateEventInput{
		Name:        r.Name,
		Description: r.Description,
		OccasionID:  r.OccasionID,
	}
}

// UpdateEventRequest represents a request to update an event.
type UpdateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateExpenditureRequest represents a request to record an expenditure.
// Amounts arrive as decimal strings and are converted to minor units at
// this boundary.
type CreateExpenditureRequest struct {
	EventID       string            `json:"event_id"`
	Description   string            `json:"description"`
	PaidBy        string            `json:"paid_by"`
	Amount        decimal.Decimal   `json:"amount"`
	SplitType     string            `json:"split_type"`
	Participants  []string          `json:"participants"`
	CustomAmounts []decimal.Decimal `json:"custom_amounts,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenditureRequest) ToUseCaseInput() (usecase.CreateExpenditureInput, error) {
	amount, err := domain.MoneyFromDecimal(r.Amount)
	if err != nil {
		return usecase.CreateExpenditureInput{}, err
	}

	var customAmounts []domain.Money
	if len(r.CustomAmounts) > 0 {
		customAmounts = make([]domain.Money, len(r.CustomAmounts))
		for i, d := range r.CustomAmounts {
			m, err := domain.MoneyFromDecimal(d)
			if err != nil {
				return usecase.CreateExpenditureInput{}, err
			}
			customAmounts[i] = m
		}
	}

	return usecase.CreateExpenditureInput{
		EventID:       r.EventID,
		Description:   r.Description,
		PaidBy:        r.PaidBy,
		Amount:        amount,
		SplitType:     domain.SplitType(r.SplitType),
		Participants:  r.Participants,
		CustomAmounts: customAmounts,
	}, nil
}

// CreatePaymentRequest represents a request to record a payment.
type CreatePaymentRequest struct {
	FromUser    string          `json:"from_user"`
	ToUser      string          `json:"to_user"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePaymentRequest) ToUseCaseInput() (usecase.CreatePaymentInput, error) {
	amount, err := domain.MoneyFromDecimal(r.Amount)
	if err != nil {
		return usecase.CreatePaymentInput{}, err
	}

	return usecase.CreatePaymentInput{
		FromUser:    r.FromUser,
		ToUser:      r.ToUser,
		Amount:      amount,
		Description: r.Description,
	}, nil
}
