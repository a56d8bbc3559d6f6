package zap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unkn0wn-root/cinecache"
)

func TestLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.Debug("cache miss", cinecache.Fields{"key": "films:1"})
	l.Warn("search request rejected", cinecache.Fields{"collection": "movies", "err": errors.New("bad sort")})
	l.Error("cache populate failed", nil)

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "films:1", entries[0].ContextMap()["key"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "bad sort", entries[1].ContextMap()["err"])
	assert.Empty(t, entries[2].Context)
}
