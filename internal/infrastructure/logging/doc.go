// Package logging provides structured logging for Maestro.
//
// It wraps log/slog with configuration-driven level filtering and output
// format selection: JSON for production, colourised text (tint) for
// development. All loggers carry default service/version attributes.
package logging
