package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nlplan/finance-planner/internal/calculation"
)

func TestLoggerImplementsEngineInterface(t *testing.T) {
	var _ calculation.Logger = New(&bytes.Buffer{}, false)
}

func TestDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)
	logger.Debugf("trace %d", 42)
	assert.Contains(t, buf.String(), "trace 42")
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Debugf("hidden")
	logger.Infof("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}
