package domain

import (
	"fmt"
	"time"
)

// Payment is a direct transfer between two users, independent of any
// expenditure. It reduces what FromUser owes ToUser. When a payment is
// created by settling a split, SplitID links it to that split.
type Payment struct {
	ID          string
	FromUser    string
	ToUser      string
	Amount      Money
	Description string
	Settled     bool
	SplitID     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates the payment request.
func (p *Payment) Validate() error {
	if p.FromUser == p.ToUser {
		return ErrSelfPayment
	}
	if p.Amount <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, p.Amount)
	}
	return nil
}

// Settle transitions the payment from unsettled to settled, exactly once.
func (p *Payment) Settle() error {
	if p.Settled {
		return ErrAlreadySettled
	}
	p.Settled = true
	return nil
}
