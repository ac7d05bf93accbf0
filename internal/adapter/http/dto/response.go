package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/splitit/internal/domain"
)

// OccasionResponse represents an occasion in API responses.
type OccasionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OccasionFromDomain converts a domain occasion to a response.
func OccasionFromDomain(o *domain.Occasion) *OccasionResponse {
	return &OccasionResponse{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// OccasionsFromDomain converts domain occasions to responses.
func OccasionsFromDomain(occasions []*domain.Occasion) []*OccasionResponse {
	result := make([]*OccasionResponse, len(occasions))
	for i, o := range occasions {
		result[i] = OccasionFromDomain(o)
	}
	return result
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OccasionID  *string   `json:"occasion_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventFromDomain converts a domain event to a response.
func EventFromDomain(e *domain.Event) *EventResponse {
	return &EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		OccasionID:  e.OccasionID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EventsFromDomain converts domain events to responses.
func EventsFromDomain(events []*domain.Event) []*EventResponse {
	result := make([]*EventResponse, len(events))
	for i, e := range events {
		result[i] = EventFromDomain(e)
	}
	return result
}

// SplitResponse represents a split in API responses.
type SplitResponse struct {
	ID            string          `json:"id"`
	ExpenditureID string          `json:"expenditure_id"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Settled       bool            `json:"settled"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SplitFromDomain converts a domain split to a response.
func SplitFromDomain(s *domain.Split) *SplitResponse {
	return &SplitResponse{
		ID:            s.ID,
		ExpenditureID: s.ExpenditureID,
		UserID:        s.UserID,
		Amount:        s.Amount.Decimal(),
		Settled:       s.Settled,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// SplitsFromDomain converts domain splits to responses.
func SplitsFromDomain(splits []*domain.Split) []*SplitResponse {
	result := make([]*SplitResponse, len(splits))
	for i, s := range splits {
		result[i] = SplitFromDomain(s)
	}
	return result
}

// ExpenditureResponse represents an expenditure in API responses.
type ExpenditureResponse struct {
	ID          string           `json:"id"`
	EventID     string           `json:"event_id"`
	Description string           `json:"description,omitempty"`
	PaidBy      string           `json:"paid_by"`
	Amount      decimal.Decimal  `json:"amount"`
	SplitType   string           `json:"split_type"`
	Splits      []*SplitResponse `json:"splits,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ExpenditureFromDomain converts a domain expenditure to a response.
func ExpenditureFromDomain(e *domain.Expenditure, splits []*domain.Split) *ExpenditureResponse {
	resp := &ExpenditureResponse{
		ID:          e.ID,
		EventID:     e.EventID,
		Description: e.Description,
		PaidBy:      e.PaidBy,
		Amount:      e.Amount.Decimal(),
		SplitType:   string(e.SplitType),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if splits != nil {
		resp.Splits = SplitsFromDomain(splits)
	}
	return resp
}

// ExpendituresFromDomain converts domain expenditures to responses.
func ExpendituresFromDomain(expenditures []*domain.Expenditure) []*ExpenditureResponse {
	result := make([]*ExpenditureResponse, len(expenditures))
	for i, e := range expenditures {
		result[i] = ExpenditureFromDomain(e, nil)
	}
	return result
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID          string          `json:"id"`
	FromUser    string          `json:"from_user"`
	ToUser      string          `json:"to_user"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Settled     bool            `json:"settled"`
	SplitID     *string         `json:"split_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID,
		FromUser:    p.FromUser,
		ToUser:      p.ToUser,
		Amount:      p.Amount.Decimal(),
		Description: p.Description,
		Settled:     p.Settled,
		SplitID:     p.SplitID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// BalanceResponse represents a user's balance report.
type BalanceResponse struct {
	UserID          string          `json:"user_id"`
	TotalOwedToUser decimal.Decimal `json:"total_owed_to_user"`
	TotalUserOwes   decimal.Decimal `json:"total_user_owes"`
	Net             decimal.Decimal `json:"net"`
}

// BalanceFromDomain converts a domain balance report to a response.
func BalanceFromDomain(b *domain.BalanceReport) *BalanceResponse {
	return &BalanceResponse{
		UserID:          b.UserID,
		TotalOwedToUser: b.TotalOwedToUser.Decimal(),
		TotalUserOwes:   b.TotalUserOwes.Decimal(),
		Net:             b.Net.Decimal(),
	}
}

// OccasionSummaryResponse represents an occasion overview.
type OccasionSummaryResponse struct {
	Occasion          *OccasionResponse  `json:"occasion"`
	TotalExpenditures decimal.Decimal    `json:"total_expenditures"`
	TotalEvents       int                `json:"total_events"`
	UserBalances      []*BalanceResponse `json:"user_balances"`
}

// SummaryFromDomain converts a domain occasion summary to a response.
func SummaryFromDomain(s *domain.OccasionSummary) *OccasionSummaryResponse {
	balances := make([]*BalanceResponse, len(s.UserBalances))
	for i := range s.UserBalances {
		balances[i] = BalanceFromDomain(&s.UserBalances[i])
	}
	return &OccasionSummaryResponse{
		Occasion:          OccasionFromDomain(s.Occasion),
		TotalExpenditures: s.TotalExpenditures.Decimal(),
		TotalEvents:       s.TotalEvents,
		UserBalances:      balances,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
