package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewParsesLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New(Config{Level: tt.level})
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNewDevelopment(t *testing.T) {
	l, err := New(Config{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestComponentAddsField(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Component(zap.New(core), "warehouse").Infow("seeded", "count", 6)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "seeded", entry.Message)
	assert.Equal(t, "warehouse", entry.ContextMap()["component"])
	assert.EqualValues(t, 6, entry.ContextMap()["count"])
}

func TestComponentNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		Component(nil, "x").Infow("dropped")
	})
}
