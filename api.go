package cinecache

import (
	"time"
)

// Schema names the shape a document is decoded into. Key factories use it to
// keep different views of the same document under different keys.
type Schema string

func (s Schema) Name() string { return string(s) }

// Options tune a TypedCache. All fields are optional.
type Options struct {
	TTL    time.Duration // 0 => DefaultTTL
	Logger Logger        // if nil, NopLogger is used
	Hooks  Hooks         // if nil, NopHooks is used
}

func (o Options) withDefaults() Options {
	o.TTL = coalesce[time.Duration](o.TTL, DefaultTTL)
	o.Logger = coalesce[Logger](o.Logger, NopLogger{})
	o.Hooks = coalesce[Hooks](o.Hooks, NopHooks{})
	return o
}
