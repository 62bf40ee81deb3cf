// Package main hosts the vcfimport CLI entrypoint and command graph.
//
// The Cobra-based command tree parses contact exports, writes them as CSV,
// persists them into the local contact store, and lists what has been
// imported. It centralizes configuration resolution and logger setup so
// subcommands only translate flags into calls on the internal packages.
//
// Command output goes to stdout; logs go to stderr and, when configured, to
// the JSON log file.
package main
