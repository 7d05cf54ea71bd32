// Package model defines the value types exchanged between the orchestrator,
// the result cache and the worker processes.
package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/mod/module"
)

const (
	// TestIDSeparator separates package and test name in records and on the wire.
	TestIDSeparator = "#"
	// TriggerSeparator separates package and test name in triggering-test files.
	TriggerSeparator = "::"
)

// TestID identifies a single Go test function (or subtest) inside a package.
type TestID struct {
	Package string
	Name    string
}

func (t TestID) String() string {
	return t.Package + TestIDSeparator + t.Name
}

// Compare orders test ids by their string form.
func (t TestID) Compare(other TestID) int {
	return strings.Compare(t.String(), other.String())
}

// NewTestID validates pkg and name and returns the combined id.
func NewTestID(pkg, name string) (TestID, error) {
	if err := module.CheckImportPath(pkg); err != nil {
		return TestID{}, formatError("test id", pkg+TestIDSeparator+name, err)
	}

	if err := checkTestName(name); err != nil {
		return TestID{}, formatError("test id", pkg+TestIDSeparator+name, err)
	}

	return TestID{Package: pkg, Name: name}, nil
}

// ParseTestID is the inverse of TestID.String for the given separator.
func ParseTestID(s, separator string) (TestID, error) {
	pkg, name, ok := strings.Cut(s, separator)
	if !ok {
		return TestID{}, formatError("test id", s, fmt.Errorf("missing separator %q", separator))
	}

	return NewTestID(pkg, name)
}

// checkTestName accepts Test*/Fuzz* identifiers optionally followed by
// "/subtest" segments. Commas and whitespace are never allowed because the
// id is embedded in comma-separated, line-oriented records.
func checkTestName(name string) error {
	if name == "" {
		return errors.New("empty test name")
	}

	if strings.ContainsFunc(name, func(r rune) bool { return r == ',' || unicode.IsSpace(r) }) {
		return errors.New("test name contains comma or whitespace")
	}

	top, _, _ := strings.Cut(name, "/")
	if !strings.HasPrefix(top, "Test") && !strings.HasPrefix(top, "Fuzz") {
		return fmt.Errorf("%q is not a Test or Fuzz function", top)
	}

	for i, r := range top {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}

		return fmt.Errorf("%q is not an identifier", top)
	}

	return nil
}
