package argparse

import "log/slog"

// Option configures a [Parser].
type Option func(*config)

type config struct {
	parsePanic      bool
	conversionPanic bool
	logger          *slog.Logger
}

// WithParsePanic makes [Parser.Parse] panic with a [*ParseError] instead of returning it. Use
// [Recover] to turn the panic back into an error at a convenient boundary.
func WithParsePanic() Option {
	return func(c *config) {
		c.parsePanic = true
	}
}

// WithConversionPanic makes accessors panic with a [*ConversionError] as soon as a conversion
// fails. The failure is still recorded first, so [Parser.Failed] and [Parser.ErrorMessage]
// report it after a recovered panic.
func WithConversionPanic() Option {
	return func(c *config) {
		c.conversionPanic = true
	}
}

// WithLogger sets a logger for debug records about parsing and failed conversions. Without a
// logger the Parser is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
