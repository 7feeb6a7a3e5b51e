package logging

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "syllabus.log")
	closer, err := Setup("debug", path)
	require.NoError(t, err)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	log.WithField("subject", "python").Debug("subject selected")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "subject selected")
	assert.Contains(t, string(data), "subject=python")
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, err := Setup("chatty", "")
	assert.Error(t, err)
}

func TestQuietWithoutFileDiscards(t *testing.T) {
	closer, err := Quiet("info", "")
	require.NoError(t, err)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	assert.NoError(t, closer.Close())
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}
