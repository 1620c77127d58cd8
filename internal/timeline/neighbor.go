package timeline

import (
	"fmt"

	"github.com/roach88/phrasekit/internal/host"
)

// Mode selects which side of a position FindNearest considers.
type Mode int

const (
	// ModeBoth considers the notes on either side of the position.
	ModeBoth Mode = iota
	// ModeBefore considers only the note preceding the position.
	ModeBefore
	// ModeAfter considers only the note at or after the position.
	ModeAfter
)

func (m Mode) String() string {
	switch m {
	case ModeBoth:
		return "both"
	case ModeBefore:
		return "before"
	case ModeAfter:
		return "after"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "both", "before" or "after".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "both", "":
		return ModeBoth, nil
	case "before":
		return ModeBefore, nil
	case "after":
		return ModeAfter, nil
	}
	return ModeBoth, fmt.Errorf("unknown search mode %q: must be one of both, before, after", s)
}

// FindPrevious returns the note with the largest absolute onset strictly
// before position, across every group reference on the track.
func FindPrevious(position host.Blick, track host.Track) (NoteOnsetPair, bool) {
	var best NoteOnsetPair
	found := false
	for i := 0; i < track.NumGroups(); i++ {
		ref := track.GroupReference(i)
		g := ref.Target()
		if g == nil {
			continue
		}
		idx := IndexAtOrAfter(position, ref)
		if idx == 0 {
			continue
		}
		pair := NewPair(g.Note(idx-1), ref)
		if pair.Onset < position && (!found || pair.Onset > best.Onset) {
			best = pair
			found = true
		}
	}
	return best, found
}

// FindNext returns the note with the smallest absolute onset at or after
// position, across every group reference on the track.
func FindNext(position host.Blick, track host.Track) (NoteOnsetPair, bool) {
	var best NoteOnsetPair
	found := false
	for i := 0; i < track.NumGroups(); i++ {
		ref := track.GroupReference(i)
		n, ok := FindAtOrAfter(position, ref)
		if !ok {
			continue
		}
		pair := NewPair(n, ref)
		if pair.Onset >= position && (!found || pair.Onset < best.Onset) {
			best = pair
			found = true
		}
	}
	return best, found
}

// FindNearest returns the note closest to position. Each group reference
// offers one candidate chosen according to mode; the candidate with the
// smallest Distance wins and ties keep the earlier reference.
func FindNearest(position host.Blick, track host.Track, mode Mode) (NoteOnsetPair, bool) {
	var best NoteOnsetPair
	var bestScore host.Blick
	found := false
	for i := 0; i < track.NumGroups(); i++ {
		ref := track.GroupReference(i)
		n := nearestInGroup(position, ref, mode)
		if n == nil {
			continue
		}
		pair := NewPair(n, ref)
		score := pair.Distance(position)
		if !found || score < bestScore {
			best = pair
			bestScore = score
			found = true
		}
	}
	return best, found
}

func nearestInGroup(position host.Blick, ref host.GroupRef, mode Mode) host.Note {
	g := ref.Target()
	if g == nil || g.NumNotes() == 0 {
		return nil
	}
	count := g.NumNotes()
	idx := IndexAtOrAfter(position, ref)

	if mode == ModeAfter {
		if idx < count {
			return g.Note(idx)
		}
		return nil
	}

	if idx == count {
		return g.Note(count - 1)
	}
	if idx == 0 {
		if mode == ModeBefore {
			return nil
		}
		return g.Note(0)
	}

	prev := g.Note(idx - 1)
	if mode == ModeBefore {
		return prev
	}

	candidate := g.Note(idx)
	local := position - ref.Onset()
	prevEnd := prev.Onset() + prev.Duration()
	if local < prevEnd || abs(candidate.Onset()-local) > abs(prevEnd-local) {
		return prev
	}
	return candidate
}

func abs(v host.Blick) host.Blick {
	if v < 0 {
		return -v
	}
	return v
}
