package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BaselineMutant is the mutant id that means "no mutant active".
const BaselineMutant = 0

// WorkOrder asks a worker to run one test with one mutant active, e.g.
// "run calc#TestAdd with mutant 4 enabled and a 300ms timeout".
//
// WorkOrder is comparable; two orders are equal iff all fields are equal.
type WorkOrder struct {
	Test      TestID
	MutantID  int
	TimeoutMs int64
}

// NewWorkOrder builds a WorkOrder, rounding the timeout down to whole milliseconds.
func NewWorkOrder(test TestID, mutantID int, timeout time.Duration) WorkOrder {
	return WorkOrder{Test: test, MutantID: mutantID, TimeoutMs: timeout.Milliseconds()}
}

// Timeout returns the allotted run time as a duration.
func (w WorkOrder) Timeout() time.Duration {
	return time.Duration(w.TimeoutMs) * time.Millisecond
}

// IsBaseline reports whether the order runs the unmutated program.
func (w WorkOrder) IsBaseline() bool {
	return w.MutantID == BaselineMutant
}

// String renders the canonical form "test,mutant,timeout".
func (w WorkOrder) String() string {
	return w.Test.String() + "," + strconv.Itoa(w.MutantID) + "," + strconv.FormatInt(w.TimeoutMs, 10)
}

// ParseWorkOrder is the inverse of WorkOrder.String.
func ParseWorkOrder(s string) (WorkOrder, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return WorkOrder{}, formatError("work order", s, fmt.Errorf("expected 3 fields, got %d", len(fields)))
	}

	test, err := ParseTestID(fields[0], TestIDSeparator)
	if err != nil {
		return WorkOrder{}, formatError("work order", s, err)
	}

	mutantID, err := strconv.Atoi(fields[1])
	if err != nil {
		return WorkOrder{}, formatError("work order", s, err)
	}

	if mutantID < 0 {
		return WorkOrder{}, formatError("work order", s, errors.New("negative mutant id"))
	}

	timeoutMs, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return WorkOrder{}, formatError("work order", s, err)
	}

	if timeoutMs <= 0 {
		return WorkOrder{}, formatError("work order", s, errors.New("timeout must be positive"))
	}

	return WorkOrder{Test: test, MutantID: mutantID, TimeoutMs: timeoutMs}, nil
}
