package commitcache

import (
	"dario.cat/mergo"

	"github.com/vcsviewer/commitcache/internal/trace"
)

// Options configures a Cache. The zero value is never used directly;
// New always merges caller-supplied Options over DefaultOptions so
// that an Option func only needs to set the fields it cares about.
type Options struct {
	// Trace is the trace.Target bitmask New installs process-wide via
	// trace.SetTarget; it defaults to whatever target is already active
	// (for example one enabled by trace.ReadEnv).
	Trace trace.Target
	// PrefixCacheSize bounds the CommitStore's prefix-lookup memo.
	PrefixCacheSize int
	// FoldCompact selects the compact (ASCII fast-path) Unicode case
	// folding table for search, trading a little correctness on rare
	// scripts for materially less allocation on the common path.
	FoldCompact bool
}

// DefaultOptions returns the baseline Options a bare New() builds on.
func DefaultOptions() Options {
	return Options{
		Trace:           trace.GetTarget(),
		PrefixCacheSize: 256,
		FoldCompact:     true,
	}
}

// Option mutates an Options value before it's merged over
// DefaultOptions by New.
type Option func(*Options)

// WithTrace overrides the active trace targets.
func WithTrace(target trace.Target) Option {
	return func(o *Options) { o.Trace = target }
}

// WithPrefixCacheSize overrides the prefix-lookup memo capacity.
func WithPrefixCacheSize(n int) Option {
	return func(o *Options) { o.PrefixCacheSize = n }
}

// WithFoldCompact sets the search case-folding mode. Only true takes
// effect: resolveOptions merges with mergo.WithOverride, which skips
// zero-valued fields, so WithFoldCompact(false) leaves the default
// (true) in place.
func WithFoldCompact(compact bool) Option {
	return func(o *Options) { o.FoldCompact = compact }
}

// resolveOptions applies opts over a zero Options value and merges the
// result over DefaultOptions, so an unset field in opts falls back to
// the default rather than the zero value.
func resolveOptions(opts ...Option) Options {
	var overrides Options
	for _, opt := range opts {
		opt(&overrides)
	}

	resolved := DefaultOptions()
	if err := mergo.Merge(&resolved, overrides, mergo.WithOverride); err != nil {
		// mergo only errors on mismatched types between dst/src, which
		// can't happen here since both are Options; kept as a defensive
		// fallback to the defaults rather than a panic.
		return DefaultOptions()
	}
	return resolved
}
