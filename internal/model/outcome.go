package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// OutcomeType is the coarse category of an executed WorkOrder.
type OutcomeType string

const (
	// Pass means the test completed without signalling failure.
	Pass OutcomeType = "PASS"
	// Fail means the test signalled failure (non-zero exit).
	Fail OutcomeType = "FAIL"
	// Timeout means the test exceeded the WorkOrder's timeout and was killed.
	Timeout OutcomeType = "TIMEOUT"
	// Crash means the worker died or went silent past its deadline.
	Crash OutcomeType = "CRASH"
)

// OutcomeTypes lists every type in display order.
var OutcomeTypes = []OutcomeType{Pass, Fail, Timeout, Crash}

// ParseOutcomeType converts the canonical name back into an OutcomeType.
func ParseOutcomeType(s string) (OutcomeType, error) {
	for _, t := range OutcomeTypes {
		if string(t) == s {
			return t, nil
		}
	}

	return "", fmt.Errorf("unknown outcome type %q", s)
}

// CrashRunTimeMs is the run time reported by every CRASH outcome.
const CrashRunTimeMs = -1

// Outcome is the result of executing one WorkOrder.
type Outcome struct {
	Type      OutcomeType
	RunTimeMs int64
	Digest    string
	// CoveredMutants is ascending and duplicate-free. Only baseline runs fill it.
	CoveredMutants []int
	// StackTrace is normalized and non-empty only for FAIL.
	StackTrace string
}

// CrashOutcome returns the outcome used when a worker dies or hangs.
func CrashOutcome() Outcome {
	return Outcome{Type: Crash, RunTimeMs: CrashRunTimeMs}
}

// TimeoutOutcome reports the requested timeout as run time: the real run
// time of an abandoned execution is unknown.
func TimeoutOutcome(w WorkOrder) Outcome {
	return Outcome{Type: Timeout, RunTimeMs: w.TimeoutMs}
}

// PassOutcome returns a PASS outcome.
func PassOutcome(runTimeMs int64, digest string) Outcome {
	return Outcome{Type: Pass, RunTimeMs: runTimeMs, Digest: digest}
}

// FailOutcome returns a FAIL outcome; trace is normalized.
func FailOutcome(runTimeMs int64, digest, trace string) Outcome {
	return Outcome{Type: Fail, RunTimeMs: runTimeMs, Digest: digest, StackTrace: NormalizeStackTrace(trace)}
}

// WithCoveredMutants returns a copy of o whose covered set is ids, sorted and deduplicated.
func (o Outcome) WithCoveredMutants(ids []int) Outcome {
	covered := slices.Clone(ids)
	slices.Sort(covered)
	o.CoveredMutants = slices.Compact(covered)

	return o
}

// Equal compares all five fields.
func (o Outcome) Equal(other Outcome) bool {
	return o.Type == other.Type &&
		o.RunTimeMs == other.RunTimeMs &&
		o.Digest == other.Digest &&
		slices.Equal(o.CoveredMutants, other.CoveredMutants) &&
		o.StackTrace == other.StackTrace
}

// Key is a hashable identity consistent with Equal.
func (o Outcome) Key() string {
	return o.String()
}

// String renders "TYPE,runTime,digest,covered,stackTrace". The stack trace is
// always last so it may contain commas.
func (o Outcome) String() string {
	var b strings.Builder

	b.WriteString(string(o.Type))
	b.WriteByte(',')
	b.WriteString(strconv.FormatInt(o.RunTimeMs, 10))
	b.WriteByte(',')
	b.WriteString(o.Digest)
	b.WriteByte(',')

	for i, id := range o.CoveredMutants {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(strconv.Itoa(id))
	}

	b.WriteByte(',')
	b.WriteString(o.StackTrace)

	return b.String()
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	fields := strings.SplitN(s, ",", 5)
	if len(fields) != 5 {
		return Outcome{}, formatError("outcome", s, fmt.Errorf("expected 5 fields, got %d", len(fields)))
	}

	outcomeType, err := ParseOutcomeType(fields[0])
	if err != nil {
		return Outcome{}, formatError("outcome", s, err)
	}

	runTime, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Outcome{}, formatError("outcome", s, err)
	}

	var covered []int

	for _, field := range strings.Fields(fields[3]) {
		id, err := strconv.Atoi(field)
		if err != nil {
			return Outcome{}, formatError("outcome", s, err)
		}

		covered = append(covered, id)
	}

	o := Outcome{
		Type:       outcomeType,
		RunTimeMs:  runTime,
		Digest:     fields[2],
		StackTrace: fields[4],
	}

	if len(covered) > 0 {
		o = o.WithCoveredMutants(covered)
	}

	return o, nil
}

// NormalizeStackTrace collapses every whitespace run (newlines included) into a
// single space and trims both ends, so a failure message fits on one line.
func NormalizeStackTrace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
