package cmd

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"killmap.dev/pkg/killmap/internal/domain"
	domainmocks "killmap.dev/pkg/killmap/internal/domain/mocks"
)

func TestWorkerCmd_ServesStdio(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	mockWorkflow.EXPECT().Serve(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, args domain.ServeArgs) error {
			assert.Equal(t, "./bins", args.BinariesDir)
			assert.Equal(t, "subject.env", args.EnvFile)
			assert.Equal(t, 1024, args.OutputLimit)

			line, err := io.ReadAll(args.In)
			require.NoError(t, err)
			_, err = io.WriteString(args.Out, "READY\n"+strings.ToUpper(string(line)))

			return err
		})

	out := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.AddCommand(newWorkerCmd())
	cmd.SetIn(strings.NewReader("order\n"))
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"worker", "--binaries", "./bins", "--env-file", "subject.env", "--output-limit", "1024",
		"--log-file", t.TempDir() + "/worker.log",
	})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "READY\nORDER\n", out.String())
}

func TestWorkerCmd_RejectsArguments(t *testing.T) {
	_, err := executeWithMockWorkflow(t, newWorkerCmd(), nil, "worker", "extra")
	require.Error(t, err)
}
