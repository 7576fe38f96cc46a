// Package logging assembles the structured slog loggers used across
// subsync components.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and provides a no-op logger so engine components can accept an
// optional logger without nil checks at every call site.
package logging
