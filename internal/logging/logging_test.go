package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "taskcal.log")
	logger, closer, err := New(Options{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.WithField("task_id", "42").Debug("alarm fired")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "alarm fired"))
	assert.True(t, strings.Contains(string(raw), "task_id=42"))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, level)
}

func TestNewWithoutFileDiscards(t *testing.T) {
	logger, closer, err := New(Options{})
	require.NoError(t, err)
	defer closer.Close()
	logger.Info("dropped")
}
