package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLoggerWritesAndCloses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geoedit.log")
	logger, closeLog, err := openLogger(path, 0)
	require.NoError(t, err)
	logger.Info("starting", "style", "osm")
	require.NoError(t, closeLog())
	assert.Error(t, closeLog(), "file already closed")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg"="starting"`)
	assert.Contains(t, string(b), "geoedit")
}

func TestOpenLoggerWithoutPathDiscards(t *testing.T) {
	logger, closeLog, err := openLogger("", 0)
	require.NoError(t, err)
	logger.Info("ignored")
	assert.NoError(t, closeLog())
}

func TestOpenLoggerBadPath(t *testing.T) {
	_, _, err := openLogger(filepath.Join(t.TempDir(), "missing", "geoedit.log"), 0)
	assert.ErrorContains(t, err, "open log file")
}
