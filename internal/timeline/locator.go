package timeline

import (
	"github.com/roach88/phrasekit/internal/host"
)

// IndexAtOrAfter returns the index of the first note in ref's group whose
// absolute onset is >= target, or the group's note count when there is none
// (including when the group is empty or missing).
func IndexAtOrAfter(target host.Blick, ref host.GroupRef) int {
	g := ref.Target()
	if g == nil {
		return 0
	}
	local := target - ref.Onset()

	// lo < hi always; notes[lo].Onset() < local and notes[hi].Onset() >= local,
	// with lo = -1 and hi = NumNotes() standing in for the missing ends.
	lo, hi := -1, g.NumNotes()
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if g.Note(mid).Onset() < local {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

// FindAtOrAfter returns the note of ref's group with the smallest onset that
// is >= target (absolute). ok is false when no such note exists.
func FindAtOrAfter(target host.Blick, ref host.GroupRef) (host.Note, bool) {
	g := ref.Target()
	if g == nil {
		return nil, false
	}
	idx := IndexAtOrAfter(target, ref)
	if idx >= g.NumNotes() {
		return nil, false
	}
	return g.Note(idx), true
}
