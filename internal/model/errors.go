package model

import (
	"errors"
	"fmt"
)

// ErrUnknownTest means a well-formed test id names no test its package defines.
var ErrUnknownTest = errors.New("no such test in package")

// FormatError reports a canonical string that could not be decoded.
type FormatError struct {
	Kind  string // "test id", "work order", "outcome" or "record"
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed %s %q", e.Kind, e.Input)
	}

	return fmt.Sprintf("malformed %s %q: %v", e.Kind, e.Input, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatError(kind, input string, err error) error {
	return &FormatError{Kind: kind, Input: input, Err: err}
}

// UnknownTestError reports a test id missing from its package's test list.
func UnknownTestError(test TestID) error {
	return formatError("test id", test.String(), ErrUnknownTest)
}
