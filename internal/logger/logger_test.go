package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenOutputCreatesLogDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	out, err := openOutput(path)
	require.NoError(t, err)
	defer out.(*os.File).Close()

	assert.FileExists(t, path)
}

func TestInitFallsBackToStdout(t *testing.T) {
	// a regular file cannot hold the log directory
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := openOutput(filepath.Join(blocker, "logs", "app.log"))
	require.Error(t, err)

	err = Init(Config{Level: "disabled", Output: filepath.Join(blocker, "logs", "app.log")})
	assert.NoError(t, err)
	assert.NotNil(t, Get())
}
