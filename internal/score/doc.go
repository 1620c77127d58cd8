// Package score is an in-memory project document implementing the host
// capability interfaces.
//
// A Project owns a registry of Groups keyed by id and an ordered list of
// Tracks. Tracks own GroupRefs; a GroupRef stores only the id of its target
// and resolves it through the project registry on every Target call, so
// many references can share one group without the group knowing about them.
//
// Documents round-trip through YAML (Document, LoadFile, SaveFile) and have a
// canonical JSON form (MarshalCanonical) whose SHA-256 (Hash) identifies a
// revision in the store.
package score
