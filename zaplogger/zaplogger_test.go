package zaplogger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/get-eventually/go-commander/logger"
	"github.com/get-eventually/go-commander/zaplogger"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := zaplogger.Wrap(zap.New(core))

	l.Debug("command added", logger.Command("say"))
	l.Info("command called", logger.With("history.size", 1))
	l.Error("command failed", logger.Err(errors.New("boom")))

	entries := logs.All()
	if !assert.Len(t, entries, 3) {
		return
	}

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "say", entries[0].ContextMap()["command"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.EqualValues(t, 1, entries[1].ContextMap()["history.size"])

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
}
