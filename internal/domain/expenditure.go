package domain

import (
	"fmt"
	"time"
)

// SplitType selects how an expenditure is divided among its participants.
type SplitType string

const (
	SplitTypeEqual  SplitType = "equal"
	SplitTypeCustom SplitType = "custom"
)

// IsValid checks if the split type is one of the supported types.
func (t SplitType) IsValid() bool {
	return t == SplitTypeEqual || t == SplitTypeCustom
}

// Expenditure is a single recorded expense within an event. It is immutable
// once its splits are generated; splits are created atomically with it and
// never independently.
type Expenditure struct {
	ID          string
	EventID     string
	Description string
	PaidBy      string
	Amount      Money
	SplitType   SplitType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Split is one participant's owed share of one expenditure. For any
// expenditure the split amounts sum exactly to the expenditure amount.
type Split struct {
	ID            string
	ExpenditureID string
	UserID        string
	Amount        Money
	Settled       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Settle transitions the split from unsettled to settled. The transition is
// one-way; a second call fails rather than succeeding silently so that
// double-settlement attempts stay visible to the caller.
func (s *Split) Settle() error {
	if s.Settled {
		return ErrAlreadySettled
	}
	s.Settled = true
	return nil
}

// NewExpenditure is a proposed expenditure before allocation runs.
type NewExpenditure struct {
	EventID       string
	Description   string
	PaidBy        string
	Amount        Money
	SplitType     SplitType
	Participants  []string
	CustomAmounts []Money
}

// Validate checks that the proposal is internally consistent. Checks run in
// order and stop at the first failure. The payer is not required to appear
// among the participants; whether the payer carries a share of their own
// expenditure is the caller's decision.
func (e *NewExpenditure) Validate() error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, e.Amount)
	}
	if len(e.Participants) == 0 {
		return ErrEmptyParticipants
	}
	if dup, ok := firstDuplicate(e.Participants); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateParticipant, dup)
	}
	if !e.SplitType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSplitType, e.SplitType)
	}
	if e.SplitType == SplitTypeCustom && len(e.CustomAmounts) != len(e.Participants) {
		return fmt.Errorf("%w: %d custom amounts for %d participants",
			ErrSplitMismatch, len(e.CustomAmounts), len(e.Participants))
	}
	return nil
}

func firstDuplicate(ids []string) (string, bool) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}
