// Package store keeps project history in SQLite.
//
// Each save of a project appends a revision holding the canonical JSON of
// the document and its content hash. Commands that change a project also
// append an edit record naming the action, its arguments and the hashes
// before and after, so history can be listed and any revision restored.
//
// # Ordering
//
// Revisions are numbered per project by seq, starting at 1. All queries
// order by seq, then id, so listings are stable regardless of wall time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
