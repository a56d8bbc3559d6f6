package slog

import (
	"bytes"
	"encoding/json"
	stdslog "log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/cinecache"
)

func TestWritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewJSONHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo}))}

	l.Debug("dropped", cinecache.Fields{"key": "x"})
	l.Warn("replica read failed", cinecache.Fields{"err": "i/o timeout"})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "replica read failed", rec["msg"])
	assert.Equal(t, "i/o timeout", rec["err"])
}
