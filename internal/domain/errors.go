package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned for malformed request input. All of them are
// recoverable by the caller; use errors.Is to classify.
var (
	// ErrInvalidRange is returned when a date span ends before it starts.
	ErrInvalidRange = errors.New("invalid range: end date before start date")

	// ErrInvalidShift is returned when a shift window is zero-length or
	// its raw minute values fall outside a single day.
	ErrInvalidShift = errors.New("invalid shift window")

	// ErrUnsupportedVariant is returned when a termination request carries
	// a variant the engine does not recognize. There is deliberately no
	// fallback branch.
	ErrUnsupportedVariant = errors.New("unsupported termination variant")

	// ErrNegativeValue is returned when a monetary, day or hour input is
	// below zero.
	ErrNegativeValue = errors.New("negative value")
)

// MissingInputError reports every required field absent from a request.
// Fields are collected before returning so the caller sees the complete
// list, not just the first omission.
type MissingInputError struct {
	Fields []string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required input: %s", strings.Join(e.Fields, ", "))
}

// IsMissingInput reports whether err is a MissingInputError and returns it.
func IsMissingInput(err error) (*MissingInputError, bool) {
	var me *MissingInputError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}
