package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "json")

	log.Debug().Msg("hidden")
	log.Info().Str("student_id", "IU1").Msg("dashboard saved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "dashboard saved", entry["message"])
	assert.Equal(t, "IU1", entry["student_id"])
	assert.Contains(t, entry, "time")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "loud", "json")

	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
	log.Info().Msg("shown")
	assert.NotEmpty(t, buf.String())
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", "console")

	log.Debug().Msg("starting")
	assert.Contains(t, buf.String(), "starting")
}
