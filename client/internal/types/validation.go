package types

import (
	"errors"
	"fmt"
	"strings"
)

// ------------------------------
// Shared Errors
// ------------------------------

var (
	// ErrInvalidRange is returned for ranges other than week and month
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidID is returned for non-positive resource ids
	ErrInvalidID = errors.New("invalid id")
	// ErrEmptyContent is returned when a body text is blank
	ErrEmptyContent = errors.New("content cannot be empty")
)

// Range scopes insights and statistics
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

// Ranges lists every supported range in display order.
func Ranges() []Range { return []Range{RangeWeek, RangeMonth} }

// ValidateRange rejects anything but week or month.
func ValidateRange(r Range) error {
	switch r {
	case RangeWeek, RangeMonth:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRange, string(r))
	}
}

// ValidateID ensures a backend id is positive; field names the parameter.
func ValidateID(id int64, field string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s must be > 0, got %d", ErrInvalidID, field, id)
	}
	return nil
}

// ValidateContent rejects blank text.
func ValidateContent(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyContent
	}
	return nil
}
