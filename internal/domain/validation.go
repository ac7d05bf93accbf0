package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidName = errors.New("invalid name")

const (
	MinNameLength = 1
	MaxNameLength = 200
)

// ValidateName validates occasion/event names.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}
