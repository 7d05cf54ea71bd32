package model

// Tally counts outcomes by type.
type Tally struct {
	Pass    int `yaml:"pass"`
	Fail    int `yaml:"fail"`
	Timeout int `yaml:"timeout"`
	Crash   int `yaml:"crash"`
}

// Add counts one outcome of the given type.
func (t *Tally) Add(outcomeType OutcomeType) {
	switch outcomeType {
	case Pass:
		t.Pass++
	case Fail:
		t.Fail++
	case Timeout:
		t.Timeout++
	case Crash:
		t.Crash++
	}
}

// Merge adds every count of other.
func (t *Tally) Merge(other Tally) {
	t.Pass += other.Pass
	t.Fail += other.Fail
	t.Timeout += other.Timeout
	t.Crash += other.Crash
}

// Total is the number of outcomes counted.
func (t Tally) Total() int {
	return t.Pass + t.Fail + t.Timeout + t.Crash
}

// TestSummary describes the records of one test in a result log.
type TestSummary struct {
	Test              string      `yaml:"test"`
	Baseline          OutcomeType `yaml:"baseline,omitempty"`
	Covered           int         `yaml:"covered"`
	Mutants           int         `yaml:"mutants"`
	BehaviourChanging int         `yaml:"behaviour_changing"`
	Outcomes          Tally       `yaml:"outcomes"`
}

// Summary describes a whole result log.
type Summary struct {
	Tests             []TestSummary `yaml:"tests"`
	Mutants           int           `yaml:"mutants"`
	BehaviourChanging int           `yaml:"behaviour_changing"`
	Outcomes          Tally         `yaml:"outcomes"`
	MalformedLines    int           `yaml:"malformed_lines"`
}
