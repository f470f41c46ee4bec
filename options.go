package ggrid

import "log/slog"

// Option configures a Controller during creation.
//
// Example:
//
//	// Synthetic placeholder data
//	ctrl, err := ggrid.NewController(cfg, 100)
//
//	// Rows from a workbook, tighter cache
//	ctrl, err := ggrid.NewController(cfg, 100,
//	    ggrid.WithSource(sheet),
//	    ggrid.WithEvictionPolicy(ggrid.EvictionPolicy{Trigger: 6, Radius: 1, Keep: 2}))
type Option func(*controllerOptions)

// controllerOptions holds optional configuration for Controller creation.
type controllerOptions struct {
	source SegmentSource
	policy EvictionPolicy
	style  Style
	logger *slog.Logger
}

// defaultOptions returns the default controller options.
func defaultOptions() controllerOptions {
	return controllerOptions{
		source: SyntheticSource{},
		policy: DefaultEvictionPolicy(),
		style:  DefaultStyle(),
	}
}

// WithSource sets the SegmentSource rows are loaded from.
// The default is SyntheticSource.
func WithSource(src SegmentSource) Option {
	return func(o *controllerOptions) {
		o.source = src
	}
}

// WithEvictionPolicy replaces the default segment eviction policy.
func WithEvictionPolicy(p EvictionPolicy) Option {
	return func(o *controllerOptions) {
		o.policy = p
	}
}

// WithStyle replaces the default colors and font.
func WithStyle(s Style) Option {
	return func(o *controllerOptions) {
		o.style = s
	}
}

// WithLogger sets a logger for this controller and its cache, overriding
// the package logger set with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *controllerOptions) {
		o.logger = l
	}
}
