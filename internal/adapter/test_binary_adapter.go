package adapter

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	m "killmap.dev/pkg/killmap/internal/model"
)

// ManifestFileName is the file BuildAll writes next to the binaries.
const ManifestFileName = "manifest.yaml"

// TestBinaryAdapter compiles test binaries and enumerates the tests they contain.
type TestBinaryAdapter interface {
	// BuildAll compiles one test binary per distinct package into outDir,
	// running at most parallel builds at once, and writes the manifest.
	BuildAll(ctx context.Context, moduleDir string, packages []string, outDir string, parallel int) (m.BinaryManifest, error)

	// List returns the Test and Fuzz functions defined in a test binary.
	List(ctx context.Context, binary m.TestBinary) ([]string, error)

	// LoadManifest reads the manifest written by BuildAll.
	LoadManifest(outDir string) (m.BinaryManifest, error)
}

// LocalTestBinaryAdapter drives the go toolchain through os/exec.
type LocalTestBinaryAdapter struct {
	goBinary string
}

// NewLocalTestBinaryAdapter constructs a LocalTestBinaryAdapter using "go" from PATH.
func NewLocalTestBinaryAdapter() *LocalTestBinaryAdapter {
	return &LocalTestBinaryAdapter{goBinary: "go"}
}

// BinaryName maps an import path to a file name safe for any filesystem.
func BinaryName(pkg string) string {
	return strings.NewReplacer("/", "_", ".", "_", "\\", "_").Replace(pkg) + ".test"
}

// BuildAll implements TestBinaryAdapter.
func (a *LocalTestBinaryAdapter) BuildAll(ctx context.Context, moduleDir string, packages []string, outDir string, parallel int) (m.BinaryManifest, error) {
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return m.BinaryManifest{}, fmt.Errorf("failed to resolve binaries dir: %w", err)
	}

	if err := os.MkdirAll(absOut, 0o750); err != nil {
		slog.Error("Failed to create binaries dir", "dir", absOut, "error", err)
		return m.BinaryManifest{}, fmt.Errorf("failed to create binaries dir: %w", err)
	}

	unique := slices.Clone(packages)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	var (
		mu       sync.Mutex
		binaries []m.TestBinary
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if parallel > 0 {
		group.SetLimit(parallel)
	}

	for _, pkg := range unique {
		group.Go(func() error {
			binary, err := a.build(groupCtx, moduleDir, pkg, absOut)
			if err != nil {
				return err
			}

			mu.Lock()
			binaries = append(binaries, binary)
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return m.BinaryManifest{}, err
	}

	slices.SortFunc(binaries, func(x, y m.TestBinary) int { return strings.Compare(x.Package, y.Package) })
	manifest := m.BinaryManifest{Binaries: binaries}

	if err := a.saveManifest(absOut, manifest); err != nil {
		return m.BinaryManifest{}, err
	}

	return manifest, nil
}

func (a *LocalTestBinaryAdapter) build(ctx context.Context, moduleDir, pkg, outDir string) (m.TestBinary, error) {
	pkgDir, err := a.goOutput(ctx, moduleDir, "list", "-f", "{{.Dir}}", pkg)
	if err != nil {
		slog.Error("Failed to locate package", "package", pkg, "error", err)
		return m.TestBinary{}, fmt.Errorf("failed to locate package %s: %w", pkg, err)
	}

	binaryPath := filepath.Join(outDir, BinaryName(pkg))

	if _, err := a.goOutput(ctx, moduleDir, "test", "-c", "-o", binaryPath, pkg); err != nil {
		slog.Error("Failed to build test binary", "package", pkg, "error", err)
		return m.TestBinary{}, fmt.Errorf("failed to build test binary for %s: %w", pkg, err)
	}

	slog.Debug("Built test binary", "package", pkg, "binary", binaryPath)

	return m.TestBinary{Package: pkg, Binary: binaryPath, Dir: strings.TrimSpace(pkgDir)}, nil
}

func (a *LocalTestBinaryAdapter) goOutput(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, a.goBinary, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("go %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

// List implements TestBinaryAdapter. A package without test files has no
// binary; it contributes no tests.
func (a *LocalTestBinaryAdapter) List(ctx context.Context, binary m.TestBinary) ([]string, error) {
	if _, err := os.Stat(binary.Binary); errors.Is(err, os.ErrNotExist) {
		slog.Warn("No test binary for package", "package", binary.Package, "binary", binary.Binary)
		return nil, nil
	}

	cmd := exec.CommandContext(ctx, binary.Binary, "-test.list", ".")
	cmd.Dir = binary.Dir

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		slog.Error("Failed to list tests", "binary", binary.Binary, "error", err)
		return nil, fmt.Errorf("failed to list tests in %s: %w: %s", binary.Binary, err, strings.TrimSpace(stderr.String()))
	}

	return parseTestList(out), nil
}

func parseTestList(out []byte) []string {
	var names []string

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(name, "Test") || strings.HasPrefix(name, "Fuzz") {
			names = append(names, name)
		}
	}

	return names
}

func (a *LocalTestBinaryAdapter) saveManifest(outDir string, manifest m.BinaryManifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	path := filepath.Join(outDir, ManifestFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		slog.Error("Failed to write manifest", "path", path, "error", err)
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// LoadManifest implements TestBinaryAdapter.
func (a *LocalTestBinaryAdapter) LoadManifest(outDir string) (m.BinaryManifest, error) {
	path := filepath.Join(outDir, ManifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return m.BinaryManifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest m.BinaryManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return m.BinaryManifest{}, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}

	return manifest, nil
}
