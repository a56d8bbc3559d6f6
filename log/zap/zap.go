package zap

import (
	"sort"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/cinecache"
)

var _ cinecache.Logger = Logger{}

type Logger struct{ L *zap.Logger }

func New(l *zap.Logger) Logger { return Logger{L: l.WithOptions(zap.AddCallerSkip(1))} }

func (z Logger) Debug(msg string, f cinecache.Fields) { z.L.Debug(msg, zf(f)...) }
func (z Logger) Info(msg string, f cinecache.Fields)  { z.L.Info(msg, zf(f)...) }
func (z Logger) Warn(msg string, f cinecache.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Logger) Error(msg string, f cinecache.Fields) { z.L.Error(msg, zf(f)...) }

// zf converts fields in key order so repeated events encode identically.
func zf(f cinecache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	ks := make([]string, 0, len(f))
	for k := range f {
		ks = append(ks, k)
	}
	sort.Strings(ks)

	out := make([]zap.Field, 0, len(f))
	for _, k := range ks {
		if err, ok := f[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
