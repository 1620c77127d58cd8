package timeline

import (
	"sort"

	"github.com/roach88/phrasekit/internal/host"
)

// AbsoluteOnset returns the timeline position of a note placed through ref.
func AbsoluteOnset(n host.Note, ref host.GroupRef) host.Blick {
	return n.Onset() + ref.Onset()
}

// NoteOnsetPair is a note together with the reference it was reached
// through and the resulting absolute onset.
type NoteOnsetPair struct {
	Note  host.Note
	Ref   host.GroupRef
	Onset host.Blick
}

// NewPair pairs n with ref and computes the absolute onset.
func NewPair(n host.Note, ref host.GroupRef) NoteOnsetPair {
	return NoteOnsetPair{Note: n, Ref: ref, Onset: AbsoluteOnset(n, ref)}
}

// Refresh recomputes Onset after the note or the reference moved.
func (p *NoteOnsetPair) Refresh() {
	p.Onset = AbsoluteOnset(p.Note, p.Ref)
}

// End is the absolute end of the note.
func (p NoteOnsetPair) End() host.Blick {
	return p.Onset + p.Note.Duration()
}

// Distance is 0 when position falls inside [Onset, End), otherwise the gap
// to the nearer edge.
func (p NoteOnsetPair) Distance(position host.Blick) host.Blick {
	switch {
	case position < p.Onset:
		return p.Onset - position
	case position >= p.End():
		return position - p.End()
	default:
		return 0
	}
}

// Span returns the absolute start of the first pair and the end of the last.
// ok is false for an empty slice.
func Span(pairs []NoteOnsetPair) (start, end host.Blick, ok bool) {
	if len(pairs) == 0 {
		return 0, 0, false
	}
	return pairs[0].Onset, pairs[len(pairs)-1].End(), true
}

// SelectedPairs collects the selected notes of the current group plus every
// note of the selected child references, in timeline order.
func SelectedPairs(current host.GroupRef, notes []host.Note, refs []host.GroupRef) []NoteOnsetPair {
	pairs := make([]NoteOnsetPair, 0, len(notes))
	for _, n := range notes {
		pairs = append(pairs, NewPair(n, current))
	}
	for _, ref := range refs {
		g := ref.Target()
		if g == nil {
			continue
		}
		for i := 0; i < g.NumNotes(); i++ {
			pairs = append(pairs, NewPair(g.Note(i), ref))
		}
	}
	SortPairs(pairs)
	return pairs
}

// SortPairs orders pairs by absolute onset, keeping the relative order of
// pairs that start together.
func SortPairs(pairs []NoteOnsetPair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Onset < pairs[j].Onset
	})
}
