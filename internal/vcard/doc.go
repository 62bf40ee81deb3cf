// Package vcard parses the line-oriented contact format exported by phone
// address books into contact records.
//
// Classify and ParseLine label a single line against a closed pattern table
// and decode quoted-printable payloads. Record accumulates one block's
// fields with single-assignment semantics and derives the display name on
// demand through ReconcileNames. Stream drives the BEGIN/END block
// structure over a LineReader and hands out sealed records in input order.
//
// Every failure is an *Error tagged with a Code; use errors.Is against the
// Err* sentinels or HasCode to branch on it.
package vcard
