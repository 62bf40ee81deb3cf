// Package contactstore persists imported contacts in SQLite.
//
// Every importer batch becomes one row in imports plus one row per contact,
// written in a single transaction. Writers serialize on a lock file next to
// the database so two concurrent imports cannot interleave. Schema changes
// bump schemaVersion in schema.go; an older database is rejected with
// ErrSchemaMismatch rather than migrated.
package contactstore
