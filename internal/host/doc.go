// Package host declares the capability surface a piano-roll host exposes to
// the editing core.
//
// The core never owns project data. It queries and mutates notes, groups,
// group references, tracks and automation curves through these interfaces,
// converts time through TimeAxis and drives the transport through Playback.
// internal/score provides an in-memory implementation used by the CLI and by
// tests; a real host binding would implement the same interfaces.
//
// Positions are expressed in blicks, the host's integer unit of musical time.
// Note onsets are local to the group that stores them; a GroupRef places the
// group on a track and its onset is added to every contained note.
//
// Groups are shared: many GroupRefs may point at the same Group. A Group never
// knows its references; a GroupRef resolves its target through a handle
// lookup, never through ownership.
package host
