// Package importer drains a vcard.Stream into flattened Contact values and
// hands the completed batch to every configured Sink.
//
// A run is all-or-nothing: any stream error aborts before a sink sees a
// contact. Records whose names cannot be reconciled either abort the run or
// are skipped with a warning, depending on the configured Policy.
package importer
