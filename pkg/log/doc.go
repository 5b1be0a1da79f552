// Package log provides the logging abstraction used by pageturn components.
//
// The pagination cursor and the CLI plumbing log through the Logger
// interface so that embedding programs decide where (and whether) output
// goes. A zerolog adapter and a no-op logger are provided.
//
// # Usage
//
// Wrap an existing zerolog logger:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	cur := pagination.New(builder, pagination.WithLogger(logger))
//
// Or discard everything (the default when no logger is given):
//
//	logger := log.NoopLogger{}
package log
