package logger

import (
	"context"
	"testing"

	"github.com/prasetyowira/tyrelabel/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want zapcore.Level
	}{
		{"development default", Options{}, zapcore.DebugLevel},
		{"production default", Options{Production: true}, zapcore.InfoLevel},
		{"upper case", Options{Level: "WARN"}, zapcore.WarnLevel},
		{"explicit", Options{Level: "error", Production: true}, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := parseLevel(tt.opts)

			require.NoError(t, err)
			assert.Equal(t, tt.want, level.Level())
		})
	}
}

func TestInitialize_InvalidLevel(t *testing.T) {
	err := Initialize(Options{Level: "loud"})

	assert.ErrorContains(t, err, "invalid log level")
}

func TestInitialize_Stderr(t *testing.T) {
	// Arrange
	t.Cleanup(func() { logger = nil })

	// Act
	err := Initialize(Options{Level: "info", Output: constant.LogOutputStderr})

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NotPanics(t, func() {
		CtxInfo(context.Background(), "initialized", LoggerInfo{ContextFunction: "test"})
		Close()
	})
}

func TestCreateFields(t *testing.T) {
	// Arrange
	ctx := WithRequestID(context.Background(), "req-1")
	info := LoggerInfo{
		ContextFunction: "Build",
		Error:           &CustomError{Code: "LBL101", Message: "bad", Type: "validation"},
		Data:            map[string]interface{}{"eprel_id": 381667},
	}

	// Act
	fields := createFields(ctx, info)

	// Assert
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	assert.Equal(t, []string{
		constant.LogRequestIDKey, constant.LogFunctionKey,
		constant.LogErrorCodeKey, constant.LogErrorTypeKey, constant.LogErrorMessageKey,
		"eprel_id",
	}, keys)
}

func TestHelpers_NoLogger(t *testing.T) {
	logger = nil

	assert.NotPanics(t, func() {
		Info("msg", LoggerInfo{})
		Error("msg", LoggerInfo{})
		CtxDebug(context.Background(), "msg", LoggerInfo{})
		CtxWarn(context.Background(), "msg", LoggerInfo{})
		Close()
	})
	assert.Empty(t, getRequestID(context.Background()))
}
