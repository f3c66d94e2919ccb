package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/davidvella/tnsdedup/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, "info", logging.FormatText)
	require.NoError(t, err)

	logging.Component(logger, "dedup").WithField("action", "run").Info("done")
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, `level=info msg=done action=run component=dedup`)
	assert.NotContains(t, out, "hidden")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, "DEBUG", logging.FormatJSON)
	require.NoError(t, err)

	logging.Component(logger, "merge").Debug("shard opened")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "shard opened", entry["msg"])
	assert.Equal(t, "merge", entry["component"])
}

func TestNewErrors(t *testing.T) {
	_, err := logging.New(&bytes.Buffer{}, "loud", logging.FormatText)
	assert.Error(t, err)

	_, err = logging.New(&bytes.Buffer{}, "info", logging.Format("xml"))
	assert.EqualError(t, err, `logging: unknown format "xml"`)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		logging.Discard().Error("nowhere")
	})
}
