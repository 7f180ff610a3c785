// Package state owns the application state and the transitions that replace
// it.
//
// The model is a single immutable Snapshot (visible results plus current
// selection) and a single writer, the Coordinator. User intents arrive as
// method calls; anything long-running is handed to a worker goroutine and its
// completion flows back through the coordinator, which applies the transition
// and publishes the new snapshot on one event channel. Supersession tokens
// guarantee a stale search completion can never replace a newer one, and
// download outcomes are reported but never alter the snapshot.
package state
