package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLoggerDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(false, false, false, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupLoggerVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(false, true, false, &buf)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupLoggerDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(false, false, true, &buf)

	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupLoggerQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(true, true, true, &buf)

	logger.Error("hidden")
	assert.Empty(t, buf.String())
}
