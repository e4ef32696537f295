package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel_Ordering(t *testing.T) {
	assert.Equal(t, 0, int(DEBUG))
	assert.Equal(t, 1, int(INFO))
	assert.Equal(t, 2, int(WARN))
	assert.Equal(t, 3, int(ERROR))
	assert.True(t, DEBUG < INFO)
	assert.True(t, INFO < WARN)
	assert.True(t, WARN < ERROR)
}

func TestNew(t *testing.T) {
	for _, level := range []Level{DEBUG, INFO, WARN, ERROR} {
		l := New(level)
		assert.NotNil(t, l)
		assert.Equal(t, level, l.level)
		assert.NotNil(t, l.logger)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	original := defaultLogger.level
	defer func() { defaultLogger.level = original }()

	SetLevel(DEBUG)
	assert.Equal(t, DEBUG, defaultLogger.level)
	SetLevel(ERROR)
	assert.Equal(t, ERROR, defaultLogger.level)
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(WARN)
	l.logger = log.New(&buf, "", 0)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "[WARN] warn message")
	assert.Contains(t, output, "[ERROR] error message")
}

func TestLogger_MessageFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := New(DEBUG)
	l.logger = log.New(&buf, "", 0)

	l.Error("error %d: %s", 404, "not found")
	assert.Contains(t, buf.String(), "[ERROR] error 404: not found")
}

func TestGlobalFunctions(t *testing.T) {
	originalLevel := defaultLogger.level
	originalLogger := defaultLogger.logger
	defer func() {
		defaultLogger.level = originalLevel
		defaultLogger.logger = originalLogger
	}()

	var buf bytes.Buffer
	defaultLogger.logger = log.New(&buf, "", 0)
	SetLevel(DEBUG)

	Debug("debug test %d", 1)
	Info("info test %d", 2)
	Warn("warn test %d", 3)
	Error("error test %d", 4)

	output := buf.String()
	assert.Contains(t, output, "[DEBUG] debug test 1")
	assert.Contains(t, output, "[INFO] info test 2")
	assert.Contains(t, output, "[WARN] warn test 3")
	assert.Contains(t, output, "[ERROR] error test 4")
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", DEBUG.String())
	assert.Equal(t, "INFO", INFO.String())
	assert.Equal(t, "WARN", WARN.String())
	assert.Equal(t, "ERROR", ERROR.String())
}
