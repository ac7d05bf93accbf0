package usecase

import (
	"errors"

	"github.com/iho/splitit/internal/domain"
)

const balanceCachePrefix = "balance:"

func balanceCacheKey(userID string) string {
	return balanceCachePrefix + userID
}

// errorType maps a domain error to a metric label.
func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrSplitMismatch):
		return "split_mismatch"
	case errors.Is(err, domain.ErrNegativeAmount):
		return "negative_amount"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrEmptyParticipants):
		return "empty_participants"
	case errors.Is(err, domain.ErrDuplicateParticipant):
		return "duplicate_participant"
	case errors.Is(err, domain.ErrInvalidSplitType):
		return "invalid_split_type"
	default:
		return "other"
	}
}
