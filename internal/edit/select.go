// Package edit holds note edits driven by the playhead and the selection.
package edit

import (
	"github.com/roach88/phrasekit/internal/host"
	"github.com/roach88/phrasekit/internal/timeline"
)

// SelectNext picks the note to select after selected in the group placed by
// ref. With one selected note it steps to the following note, staying put
// at the end of the group; with several it keeps the first. With nothing
// selected it picks the note at or after playhead, or the note before it
// when playhead lies in the first half of the gap between them.
func SelectNext(ref host.GroupRef, selected []host.Note, playhead host.Blick) (host.Note, bool) {
	g := ref.Target()
	if g == nil {
		return nil, false
	}

	if len(selected) > 0 {
		target := selected[0]
		if len(selected) == 1 {
			if next := target.IndexInParent() + 1; next < g.NumNotes() {
				target = g.Note(next)
			}
		}
		return target, true
	}

	target, ok := timeline.FindAtOrAfter(playhead, ref)
	if !ok {
		return nil, false
	}
	if idx := target.IndexInParent(); idx > 0 {
		prev := g.Note(idx - 1)
		center := (target.Onset()+prev.Onset()+prev.Duration())/2 + ref.Onset()
		if playhead < center {
			target = prev
		}
	}
	return target, true
}
