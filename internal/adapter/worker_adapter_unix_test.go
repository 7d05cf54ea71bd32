//go:build !windows

package adapter

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalWorkerConn_KillStopsRunningTest(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "test.pid")

	adapter := NewLocalWorkerAdapter(
		os.Args[0],
		[]string{"-test.run=^TestHelperProcess$"},
		[]string{helperModeEnv + "=spawner", "HELPER_PIDFILE=" + pidFile},
		io.Discard,
	)

	conn, err := adapter.Spawn("worker-with-test")
	require.NoError(t, err)
	require.Equal(t, "READY", nextLine(t, conn))
	require.NoError(t, conn.Send("run"))

	var pid int

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(pidFile)
		if err != nil {
			return false
		}

		pid, err = strconv.Atoi(strings.TrimSpace(string(data)))

		return err == nil && pid > 0
	}, 30*time.Second, 20*time.Millisecond)

	require.NoError(t, conn.Kill(5*time.Second))
	<-conn.Exited()

	assert.Eventually(t, func() bool {
		return syscall.Kill(pid, 0) != nil
	}, 5*time.Second, 20*time.Millisecond, "test process %d outlived its worker", pid)
}
