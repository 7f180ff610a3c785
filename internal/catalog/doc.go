// Package catalog persists normalized track records in SQLite and exposes the
// library views the rest of the application reads.
//
// The Store owns the database connection and a companion file lock, applies
// the embedded schema on first open, and absorbs duplicate-key inserts as
// no-ops: a track's identity is its video id, and the first write wins.
// Ordering for library views is locale-neutral and deterministic.
//
// Schema changes bump schemaVersion in schema.go; users rebuild the library
// database to adopt the new schema.
package catalog
