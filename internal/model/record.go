package model

import (
	"fmt"
	"strings"
)

// Record is one line of a result log: a WorkOrder and the Outcome it produced.
type Record struct {
	WorkOrder WorkOrder
	Outcome   Outcome
}

// String renders "testId,mutantId,timeoutMs,TYPE,runTimeMs,digest,covered,stackTrace".
func (r Record) String() string {
	return r.WorkOrder.String() + "," + r.Outcome.String()
}

// ParseRecord is the inverse of Record.String. The line must not carry its terminator.
func ParseRecord(line string) (Record, error) {
	fields := strings.SplitN(line, ",", 4)
	if len(fields) != 4 {
		return Record{}, formatError("record", line, fmt.Errorf("expected at least 4 fields, got %d", len(fields)))
	}

	workOrder, err := ParseWorkOrder(strings.Join(fields[:3], ","))
	if err != nil {
		return Record{}, formatError("record", line, err)
	}

	outcome, err := ParseOutcome(fields[3])
	if err != nil {
		return Record{}, formatError("record", line, err)
	}

	return Record{WorkOrder: workOrder, Outcome: outcome}, nil
}
