// Package timeline indexes notes on a track by absolute position.
//
// Notes store onsets local to their group; a group reference adds its own
// onset. Every search here converts between the two through AbsoluteOnset
// and reports its result as a NoteOnsetPair, which captures the absolute
// onset at the time of the query. Pairs are snapshots: after moving a note or
// a reference, call Refresh.
//
// Searches never fail. "Nothing there" is reported through the ok result.
package timeline
