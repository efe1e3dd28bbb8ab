package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "info"}, &buf)
	l.Info().Str("symbol", "AAPL").Msg("price updated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "price updated", entry["message"])
	assert.Equal(t, "AAPL", entry["symbol"])
	assert.Equal(t, "portfolio-service", entry["service"])
	assert.Contains(t, entry, "time")
}

func TestNewWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "info", Pretty: true}, &buf)
	l.Info().Msg("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseLevel(tc.level))
		})
	}
}

func TestNew_SetsGlobalLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "error"}, &buf)
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l := Component(NewWithWriter(Config{}, &buf), "scheduler")
	l.Info().Msg("started")

	assert.Contains(t, buf.String(), `"component":"scheduler"`)
}
