package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// UpdateEnv names the environment variable that rewrites golden files.
const UpdateEnv = "TASKBOARD_GOLDEN_UPDATE"

// GoldenString compares rendered output against testdata/<name>.golden.
// With TASKBOARD_GOLDEN_UPDATE set the file is rewritten instead. Line endings
// are normalized so files edited on Windows still match.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()

	goldenPath := filepath.Join("testdata", name+".golden")

	if os.Getenv(UpdateEnv) != "" {
		require.NoError(t, os.MkdirAll("testdata", 0755), "create testdata dir")
		require.NoError(t, os.WriteFile(goldenPath, []byte(got), 0644), "update golden file")
		return
	}

	want, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "read golden file %s; got:\n%s", goldenPath, got)

	assert.Equal(t, strings.ReplaceAll(string(want), "\r\n", "\n"), got, "output mismatch for %s", name)
}

// Golden is like GoldenString but takes bytes.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()
	GoldenString(t, name, string(got))
}
