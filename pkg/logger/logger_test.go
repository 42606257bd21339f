package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEntryShape(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("kyb-test", &buf)

	log.Info("something happened", map[string]interface{}{"claimant": "abc"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "kyb-test", entry["service"])
	assert.Equal(t, "something happened", entry["message"])
	assert.Equal(t, "abc", entry["claimant"])
	assert.NotEmpty(t, entry["timestamp"])
}

func TestDebugSuppressedAtDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("kyb-test", &buf)

	log.Debug("noisy detail", nil)

	assert.Zero(t, buf.Len())
}

func TestLogLevelEnvLowersThreshold(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	var buf bytes.Buffer
	log := NewWithWriter("kyb-test", &buf)

	log.Debug("noisy detail", nil)

	assert.NotZero(t, buf.Len())
}
