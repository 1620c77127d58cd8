package edit

import (
	"math"

	"github.com/roach88/phrasekit/internal/host"
	"github.com/roach88/phrasekit/internal/timeline"
)

// Snapper moves a position onto the editor grid.
type Snapper interface {
	Snap(b host.Blick) host.Blick
}

// Grid snaps to the nearest multiple of Step. A non-positive Step leaves
// positions alone.
type Grid struct {
	Step host.Blick
}

func (g Grid) Snap(b host.Blick) host.Blick {
	if g.Step <= 0 {
		return b
	}
	return host.Blick(math.Round(float64(b)/float64(g.Step))) * g.Step
}

// FitResult describes an edge move. Before is the note whose end moved and
// After the note whose onset moved; either may be nil.
type FitResult struct {
	Edge    host.Blick
	Before  *timeline.NoteOnsetPair
	After   *timeline.NoteOnsetPair
	Snapped bool
}

// Moved reports whether any note changed.
func (r FitResult) Moved() bool { return r.Before != nil || r.After != nil }

// FitEdge moves the note edge nearest to playhead onto playhead. The edge is
// the end or the onset of the nearest note depending on which half of the
// note playhead falls in; when exactly two notes of current are selected
// and the nearest is one of them, the edge shared with the other wins. A
// note abutting that edge moves along with it.
//
// When playhead already sits on the edge the edge is snapped to the grid
// instead, and the move is dropped if the snapped position falls outside
// the notes involved. ok is false when the track has no notes.
func FitEdge(track host.Track, playhead host.Blick, snap Snapper, current host.GroupRef, selected []host.Note) (FitResult, bool) {
	near, ok := timeline.FindNearest(playhead, track, timeline.ModeBoth)
	if !ok {
		return FitResult{}, false
	}

	towardOnset := float64(playhead) < float64(near.Onset)+float64(near.Note.Duration())/2
	if side, ok := selectedSide(near, current, selected); ok {
		towardOnset = side
	}

	var before, after *timeline.NoteOnsetPair
	var fit bool
	if towardOnset {
		after = &near
		if prev, ok := timeline.FindPrevious(near.Onset, track); ok && prev.End() == near.Onset {
			before = &prev
		}
		fit = playhead == near.Onset
	} else {
		before = &near
		if next, ok := timeline.FindNext(near.End(), track); ok && next.Onset == near.End() {
			after = &next
		}
		fit = playhead == near.End()
	}

	edge := playhead
	if fit && snap != nil {
		edge = snap.Snap(playhead)
	}
	if (before != nil && edge <= before.Onset) || (after != nil && edge >= after.End()) {
		return FitResult{Edge: edge, Snapped: fit}, true
	}

	if before != nil {
		before.Note.SetDuration(edge - before.Onset)
	}
	if after != nil {
		end := after.End()
		after.Note.SetDuration(end - edge)
		after.Note.SetOnset(edge - after.Ref.Onset())
		after.Refresh()
	}
	return FitResult{Edge: edge, Before: before, After: after, Snapped: fit}, true
}

// selectedSide reports which edge of near the selection points at: true
// for its onset, false for its end. ok is false without a decisive pair.
func selectedSide(near timeline.NoteOnsetPair, current host.GroupRef, selected []host.Note) (towardOnset, ok bool) {
	if current == nil || len(selected) != 2 {
		return false, false
	}
	g, ng := current.Target(), near.Ref.Target()
	if g == nil || ng == nil || g.ID() != ng.ID() {
		return false, false
	}

	idx := near.Note.IndexInParent()
	var other host.Note
	for i, n := range selected {
		if n.IndexInParent() == idx {
			other = selected[1-i]
		}
	}
	if other == nil {
		return false, false
	}
	switch other.IndexInParent() {
	case idx - 1:
		return true, true
	case idx + 1:
		return false, true
	}
	return false, false
}
