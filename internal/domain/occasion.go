package domain

import "time"

// Occasion groups related events, e.g. a trip or a shared household month.
type Occasion struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Event is a gathering that expenditures belong to. An event may stand alone
// or be grouped under an occasion.
type Event struct {
	ID          string
	Name        string
	Description string
	OccasionID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OccasionSummary aggregates an occasion's expenditures and the balance of
// every user touched by them, scoped to that occasion's events.
type OccasionSummary struct {
	Occasion          *Occasion
	TotalExpenditures Money
	TotalEvents       int
	UserBalances      []BalanceReport
}
