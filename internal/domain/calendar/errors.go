package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrDateParse is returned when a date or anniversary string cannot be
	// decomposed, or when its day/month combination does not exist.
	ErrDateParse = errors.New("unparsable date")

	// ErrInvalidMonth is returned when an Adar I / Adar II variant is used
	// against a Hebrew year that has a single Adar.
	ErrInvalidMonth = errors.New("invalid month for year")
)

// DateError carries the offending input alongside one of the sentinel errors above.
type DateError struct {
	Input  string // The value that failed
	Reason string // Human readable detail
	Err    error  // ErrDateParse or ErrInvalidMonth
}

// Error implements the error interface for DateError.
func (e *DateError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: %q", e.Err, e.Input)
	}
	return fmt.Sprintf("%v: %q: %s", e.Err, e.Input, e.Reason)
}

// Unwrap returns the wrapped sentinel to support errors.Is/errors.As.
func (e *DateError) Unwrap() error {
	return e.Err
}

func parseError(input, reason string) error {
	return &DateError{Input: input, Reason: reason, Err: ErrDateParse}
}

func invalidMonthError(input, reason string) error {
	return &DateError{Input: input, Reason: reason, Err: ErrInvalidMonth}
}

// IsUnknownDate reports whether err means the date should be shown as unknown
// rather than treated as a failure.
func IsUnknownDate(err error) bool {
	return errors.Is(err, ErrDateParse) || errors.Is(err, ErrInvalidMonth)
}
