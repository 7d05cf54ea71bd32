package model

// Environment variables read by an instrumented subject program.
const (
	// MutantEnv selects the active mutant; "0" runs the unmodified program.
	MutantEnv = "KILLMAP_MUTANT"
	// CoverageEnv names a file the subject appends covered mutant ids to
	// (whitespace separated). It is only set for baseline runs.
	CoverageEnv = "KILLMAP_COVERAGE_FILE"
)

// WorkerReady is the first line a worker prints once it accepts work orders.
const WorkerReady = "READY"

// WorkerIDEnv carries the orchestrator-assigned worker id into the worker process.
const WorkerIDEnv = "KILLMAP_WORKER_ID"

// TestBinary locates the compiled test binary of one package and the
// directory its tests must run in.
type TestBinary struct {
	Package string `yaml:"package"`
	Binary  string `yaml:"binary"`
	Dir     string `yaml:"dir"`
}

// BinaryManifest lists every test binary built for a run.
type BinaryManifest struct {
	Binaries []TestBinary `yaml:"binaries"`
}

// Lookup finds the binary built for pkg.
func (bm BinaryManifest) Lookup(pkg string) (TestBinary, bool) {
	for _, b := range bm.Binaries {
		if b.Package == pkg {
			return b, true
		}
	}

	return TestBinary{}, false
}
