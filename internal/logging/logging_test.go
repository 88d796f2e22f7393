package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetup_Level(t *testing.T) {
	var buf bytes.Buffer

	logger := Setup(&buf, false)
	assert.Equal(t, logrus.InfoLevel, logger.Level)
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger = Setup(&buf, true)
	assert.Equal(t, logrus.DebugLevel, logger.Level)
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogData_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, true)

	logData := NewLogData(logger)
	logData.AddData("pages", 3)
	endTimer := logData.AddTiming("duration_ms")
	endTimer()
	logData.Log().Info("Upbank.Paginate.Complete")

	out := buf.String()
	assert.Contains(t, out, "Upbank.Paginate.Complete")
	assert.Contains(t, out, "pages=3")
	assert.Contains(t, out, "duration_ms=")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
	assert.Equal(t, logrus.PanicLevel, logger.Level)
}
