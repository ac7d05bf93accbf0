package domain

import "fmt"

// AllocateSplits turns one expenditure into per-participant splits whose
// amounts sum exactly to amount, with no leftover minor unit. Equal splits
// hand the remainder cents to the earliest participants in the caller's
// order; callers wanting a canonical result pass participants pre-sorted.
// IDs and timestamps are left for the caller to assign before persisting.
func AllocateSplits(expenditureID string, amount Money, splitType SplitType, participants []string, customAmounts []Money) ([]*Split, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	if len(participants) == 0 {
		return nil, ErrEmptyParticipants
	}
	if dup, ok := firstDuplicate(participants); ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, dup)
	}

	var (
		amounts []Money
		err     error
	)

	switch splitType {
	case SplitTypeEqual:
		amounts, err = equalShares(amount, len(participants))
	case SplitTypeCustom:
		amounts, err = customShares(amount, participants, customAmounts)
	default:
		err = fmt.Errorf("%w: %q", ErrInvalidSplitType, splitType)
	}
	if err != nil {
		return nil, err
	}

	splits := make([]*Split, len(participants))
	for i, userID := range participants {
		splits[i] = &Split{
			ExpenditureID: expenditureID,
			UserID:        userID,
			Amount:        amounts[i],
		}
	}

	return splits, nil
}

func equalShares(amount Money, n int) ([]Money, error) {
	weights := make([]int64, n)
	for i := range weights {
		weights[i] = 1
	}
	return amount.Distribute(weights)
}

func customShares(amount Money, participants []string, customAmounts []Money) ([]Money, error) {
	if len(customAmounts) != len(participants) {
		return nil, fmt.Errorf("%w: %d custom amounts for %d participants",
			ErrSplitMismatch, len(customAmounts), len(participants))
	}

	var sum Money
	for _, a := range customAmounts {
		if a.IsNegative() {
			return nil, fmt.Errorf("%w: got %s", ErrNegativeAmount, a)
		}
		sum = sum.Add(a)
	}

	// Money is exact minor units, so the comparison is strict equality.
	if sum != amount {
		return nil, &SplitMismatchError{Expected: amount, Actual: sum}
	}

	return customAmounts, nil
}
