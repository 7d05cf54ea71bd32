package adapter

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "killmap.dev/pkg/killmap/internal/model"
)

func TestBinaryName(t *testing.T) {
	assert.Equal(t, "example_com_calc_parse.test", BinaryName("example.com/calc/parse"))
	assert.Equal(t, "calc.test", BinaryName("calc"))
}

func TestParseTestList(t *testing.T) {
	out := []byte("TestAdd\nTestSub\nExampleAdd\nBenchmarkAdd\nFuzzParse\nok  \texample.com/calc\t0.002s\n")

	assert.Equal(t, []string{"TestAdd", "TestSub", "FuzzParse"}, parseTestList(out))
}

func TestLocalTestBinaryAdapter_Manifest(t *testing.T) {
	adapter := NewLocalTestBinaryAdapter()
	dir := t.TempDir()

	manifest := m.BinaryManifest{Binaries: []m.TestBinary{
		{Package: "example.com/calc", Binary: filepath.Join(dir, "example_com_calc.test"), Dir: "/src/calc"},
	}}

	require.NoError(t, adapter.saveManifest(dir, manifest))

	loaded, err := adapter.LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, manifest, loaded)

	_, err = adapter.LoadManifest(t.TempDir())
	require.Error(t, err)
}

func TestLocalTestBinaryAdapter_ListMissingBinary(t *testing.T) {
	adapter := NewLocalTestBinaryAdapter()

	names, err := adapter.List(context.Background(), m.TestBinary{
		Package: "example.com/calc",
		Binary:  filepath.Join(t.TempDir(), "absent.test"),
	})
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalTestBinaryAdapter_ListSelf(t *testing.T) {
	adapter := NewLocalTestBinaryAdapter()

	wd, err := os.Getwd()
	require.NoError(t, err)

	names, err := adapter.List(context.Background(), m.TestBinary{
		Package: "killmap.dev/pkg/killmap/internal/adapter",
		Binary:  os.Args[0],
		Dir:     wd,
	})
	require.NoError(t, err)
	assert.Contains(t, names, "TestParseTestList")
	assert.Contains(t, names, "TestHelperProcess")
}

func TestLocalTestBinaryAdapter_BuildExample(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a test binary")
	}

	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not on PATH")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	binaries := NewLocalTestBinaryAdapter()
	outDir := t.TempDir()

	manifest, err := binaries.BuildAll(ctx, filepath.Join("..", "..", "examples", "calc"), []string{"example.com/calc", "example.com/calc"}, outDir, 2)
	require.NoError(t, err)
	require.Len(t, manifest.Binaries, 1)

	loaded, err := binaries.LoadManifest(outDir)
	require.NoError(t, err)
	assert.Equal(t, manifest, loaded)

	binary, ok := manifest.Lookup("example.com/calc")
	require.True(t, ok)

	names, err := binaries.List(ctx, binary)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"TestAdd", "TestSub", "TestDivide", "TestDivideByZero"}, names)

	run := func(mutant string) RunResult {
		var out bytes.Buffer

		result, err := NewLocalTestRunnerAdapter().RunTest(ctx, RunSpec{
			Binary: binary.Binary,
			Args:   []string{"-test.run", "^TestDivideByZero$"},
			Dir:    binary.Dir,
			Env:    append(os.Environ(), m.MutantEnv+"="+mutant),
			Output: &out,
		})
		require.NoError(t, err, out.String())

		return result
	}

	assert.NotZero(t, run("0").ExitCode, "the defect fails the triggering test")
	assert.Zero(t, run("3").ExitCode, "mutant 3 fixes the defect")
}
