package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf).WithComponent("registration").WithRequestID("req-1")

	l.ErrorWithError(errors.New("boom"), "insert failed")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "registration", line["component"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "insert failed", line["message"])
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).WithFields(map[string]interface{}{"count": 3}).Info("listed")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.EqualValues(t, 3, line["count"])
}
