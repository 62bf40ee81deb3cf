// Package logging assembles structured slog loggers for vcfimport.
//
// It owns the console and JSON handlers and the level plumbing. When a log
// directory is configured, every record is also appended as a JSON line to
// vcfimport.log there, independent of the console format. Components tag
// their lines through NewComponentLogger; code that may run without a
// logger uses NewNop.
package logging
