package domain

import (
	"errors"
	"fmt"
)

var (
	// Expenditure and split errors
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrEmptyParticipants    = errors.New("participant set is empty")
	ErrDuplicateParticipant = errors.New("participant listed more than once")
	ErrInvalidSplitType     = errors.New("unknown split type")
	ErrNegativeAmount       = errors.New("split amount cannot be negative")
	ErrSplitMismatch        = errors.New("custom amounts do not reconcile with expenditure amount")
	ErrExpenditureNotFound  = errors.New("expenditure not found")
	ErrSplitNotFound        = errors.New("split not found")

	// Settlement errors
	ErrAlreadySettled = errors.New("record is already settled")

	// Payment errors
	ErrPaymentNotFound = errors.New("payment not found")
	ErrSelfPayment     = errors.New("cannot record a payment to yourself")

	// Occasion and event errors
	ErrOccasionNotFound = errors.New("occasion not found")
	ErrEventNotFound    = errors.New("event not found")

	// Infrastructure errors
	ErrCacheMiss = errors.New("cache miss")
)

// SplitMismatchError carries the exact discrepancy between the sum of a
// custom split and the expenditure amount it was supposed to cover.
type SplitMismatchError struct {
	Expected Money
	Actual   Money
}

func (e *SplitMismatchError) Error() string {
	return fmt.Sprintf("custom amounts sum to %s, expected %s (discrepancy %s)",
		e.Actual, e.Expected, e.Discrepancy())
}

func (e *SplitMismatchError) Unwrap() error {
	return ErrSplitMismatch
}

// Discrepancy returns the absolute difference between actual and expected.
func (e *SplitMismatchError) Discrepancy() Money {
	d := e.Actual.Sub(e.Expected)
	if d < 0 {
		return -d
	}
	return d
}
