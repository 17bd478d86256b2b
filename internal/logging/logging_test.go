package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, jsonOutput := range []bool{false, true} {
		logger, err := New("warn", jsonOutput)
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("verbose", false)
	assert.Error(t, err)
}
