// Package state provides observable shared values for the client sync layer.
//
// # Overview
//
// Several pieces of client state are written by one component and read by
// many: the scanner busy flag written by the polling controller, the static
// data snapshot written by the cache, the update check result, and the
// selected language. Value[T] is the single primitive they all share.
//
// # Core Types
//
// Value:
//   - Holds the latest committed value behind a sync.RWMutex
//   - Set replaces the value and wakes watchers
//   - Zero value is ready to use
//
// Reader:
//   - Read-only view handed to consumers (Get and Load)
//   - Owners keep the *Value private so only their operations can write
//
// # Change Notification
//
// Watchers are woken by closing a channel rather than by callbacks:
//
//	val, changed := r.Load()
//	render(val)
//	<-changed          // closed on the next Set
//	val, changed = r.Load()
//
// Set never runs consumer code. Owners can therefore commit while holding
// their own locks without any risk of a consumer re-entering them. Commits
// that happen while a consumer is busy are coalesced: the next Load returns
// the newest value, never an intermediate one.
//
// # Helpers
//
//   - Watch: invoke a function for the current and every later value
//   - Await: block until a predicate holds or the context ends (used by tests
//     and by hosts that need to wait for a first load)
//
// # Update Semantics
//
// Values are replaced whole. Owners publish immutable snapshots (pointers to
// structs nobody mutates after publication), so a reader either sees the old
// snapshot or the new one and never a mix.
package state
