package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nd7eeha6mr8rqv3/cashflow/cashflow/log"
)

func writeStream(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestReplayWritesAccountReport(t *testing.T) {
	t.Parallel()

	path := writeStream(t, "type,client,tx,amount\ndeposit,1,1,7.0\nwithdrawal,1,2,1.5\n")

	var stdout bytes.Buffer
	require.NoError(t, replay(path, &stdout, log.NewNop()))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "client,available,held,total,locked", lines[0])
	assert.Equal(t, "1,5.5000,0.0000,5.5000,false", lines[1])
}

func TestReplayMissingFile(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	err := replay(filepath.Join(t.TempDir(), "absent.csv"), &stdout, log.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening transaction log")
}

func TestRunRequiresStreamArgument(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	err := run(nil, &stdout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
}

func TestRunRejectsBadEnvironment(t *testing.T) {
	t.Parallel()

	path := writeStream(t, "type,client,tx,amount\n")

	var stdout bytes.Buffer
	err := run([]string{"-env", "staging", path}, &stdout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid environment")
}
