package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileLogger(t *testing.T) {
	dir := t.TempDir()

	log, err := NewFileLogger(dir, false)
	require.NoError(t, err)

	log.Info("quiet at default level")
	log.Warn("this one lands")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(filepath.Join(dir, "logs", "spark.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet at default level")
	assert.Contains(t, string(data), "this one lands")
}

func TestNewFileLoggerVerbose(t *testing.T) {
	dir := t.TempDir()

	log, err := NewFileLogger(dir, true)
	require.NoError(t, err)

	log.Debug("visible when verbose")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(filepath.Join(dir, "logs", "spark.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible when verbose")
}
