package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSamplingAndRedaction(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := New(l, Options{HitEvery: 3})

	for i := 0; i < 6; i++ {
		h.CacheHit("films:1")
	}
	if n := strings.Count(buf.String(), "cinecache.cache_hit"); n != 2 {
		t.Fatalf("sampled hits = %d want 2", n)
	}
	if strings.Contains(buf.String(), "films:1") {
		t.Fatalf("key must be redacted: %s", buf.String())
	}

	buf.Reset()
	h.CorruptEntry("films:1", errors.New("bad json"))
	if !strings.Contains(buf.String(), "level=ERROR") || !strings.Contains(buf.String(), "bad json") {
		t.Fatalf("corrupt entry log = %s", buf.String())
	}
}

func TestCustomRedactAndNilLogger(t *testing.T) {
	var buf bytes.Buffer
	h := New(slog.New(slog.NewTextHandler(&buf, nil)), Options{Redact: func(k string) string { return "K" }})
	h.ProviderSetRejected("genres:list")
	if !strings.Contains(buf.String(), "key=K") {
		t.Fatalf("log = %s", buf.String())
	}

	New(nil, Options{}).CacheMiss("x")
}
