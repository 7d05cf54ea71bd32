package adapter

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	m "killmap.dev/pkg/killmap/internal/model"
)

// TriggerMarker prefixes every triggering test in a trigger file.
const TriggerMarker = "--- "

// InputAdapter reads the files a run is driven by.
type InputAdapter interface {
	// ReadTriggeringTests returns the tests named on marker lines, in file order.
	ReadTriggeringTests(path string) ([]m.TestID, error)
	// ReadTestPackages returns the import paths listed one per line.
	ReadTestPackages(path string) ([]string, error)
	// OpenResultLog opens a previously written result log for reading.
	OpenResultLog(path string) (io.ReadCloser, error)
}

// LocalInputAdapter reads inputs from the local filesystem.
type LocalInputAdapter struct{}

// NewLocalInputAdapter constructs a LocalInputAdapter.
func NewLocalInputAdapter() *LocalInputAdapter {
	return &LocalInputAdapter{}
}

// ReadTriggeringTests implements InputAdapter. Lines without the marker are
// ignored; a marked line that is not a valid test id is an error.
func (a *LocalInputAdapter) ReadTriggeringTests(path string) ([]m.TestID, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	var tests []m.TestID

	for i, line := range lines {
		rest, ok := strings.CutPrefix(line, TriggerMarker)
		if !ok {
			continue
		}

		test, err := m.ParseTestID(strings.TrimSpace(rest), m.TriggerSeparator)
		if err != nil {
			slog.Error("Failed to parse triggering test", "path", path, "line", i+1, "error", err)
			return nil, fmt.Errorf("failed to parse triggering test at %s:%d: %w", path, i+1, err)
		}

		tests = append(tests, test)
	}

	return tests, nil
}

// ReadTestPackages implements InputAdapter. Blank lines and # comments are skipped.
func (a *LocalInputAdapter) ReadTestPackages(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	var packages []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		packages = append(packages, line)
	}

	return packages, nil
}

// OpenResultLog implements InputAdapter.
func (a *LocalInputAdapter) OpenResultLog(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		slog.Error("Failed to open result log", "path", path, "error", err)
		return nil, fmt.Errorf("failed to open result log %s: %w", path, err)
	}

	return f, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		slog.Error("Failed to open input file", "path", path, "error", err)
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return lines, nil
}
