// Package musicsearch is the boundary between tunedex and the remote music
// catalog.
//
// The remote service is opaque: a Client returns raw catalog items and may
// fail at any time. The Gateway normalizes those items into catalog tracks,
// deduplicates within a response, and persists new entries before handing the
// results back, keeping the local library a superset of everything ever seen.
//
// Failure classes stay distinct: ErrRemote covers transport and service
// faults, catalog.ErrStore covers persistence faults, and malformed
// individual items are dropped silently.
package musicsearch
