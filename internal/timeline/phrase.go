package timeline

import (
	"log/slog"

	"github.com/roach88/phrasekit/internal/host"
)

// cursor tracks how far a phrase has grown inside one group reference.
// left is the index of the earliest note taken, right the index after the
// latest one.
type cursor struct {
	ref   host.GroupRef
	group host.Group
	left  int
	right int
	count int
}

// PhraseContaining returns the phrase that seed belongs to, in timeline
// order. A phrase is a maximal run of notes in which each note starts
// exactly where the previous one ends; the run may hop between group
// references on the track. A seed with no abutting neighbors yields a
// single-element phrase.
func PhraseContaining(seed NoteOnsetPair, track host.Track) []NoteOnsetPair {
	cursors := make([]cursor, 0, track.NumGroups())
	for i := 0; i < track.NumGroups(); i++ {
		ref := track.GroupReference(i)
		g := ref.Target()
		if g == nil {
			continue
		}
		idx := IndexAtOrAfter(seed.Onset, ref)
		cursors = append(cursors, cursor{
			ref:   ref,
			group: g,
			left:  idx,
			right: idx,
			count: g.NumNotes(),
		})
	}

	var after []NoteOnsetPair
	frontier := seed.Onset
	for grown := true; grown; {
		grown = false
		for i := range cursors {
			c := &cursors[i]
			if c.right >= c.count {
				continue
			}
			n := c.group.Note(c.right)
			if AbsoluteOnset(n, c.ref) != frontier {
				continue
			}
			after = append(after, NewPair(n, c.ref))
			frontier += n.Duration()
			c.right++
			grown = true
		}
	}

	var before []NoteOnsetPair
	frontier = seed.Onset
	for grown := true; grown; {
		grown = false
		for i := range cursors {
			c := &cursors[i]
			if c.left <= 0 {
				continue
			}
			n := c.group.Note(c.left - 1)
			if AbsoluteOnset(n, c.ref)+n.Duration() != frontier {
				continue
			}
			before = append(before, NewPair(n, c.ref))
			frontier -= n.Duration()
			c.left--
			grown = true
		}
	}

	phrase := make([]NoteOnsetPair, 0, len(before)+len(after))
	for i := len(before) - 1; i >= 0; i-- {
		phrase = append(phrase, before[i])
	}
	phrase = append(phrase, after...)
	if len(phrase) == 0 {
		phrase = append(phrase, seed)
	}

	slog.Debug("phrase assembled",
		"seed", seed.Onset,
		"notes", len(phrase),
		"start", phrase[0].Onset,
		"end", phrase[len(phrase)-1].End(),
	)
	return phrase
}

// PhraseAt returns the phrase of the note nearest to position. ok is false
// when the track has no notes.
func PhraseAt(position host.Blick, track host.Track) ([]NoteOnsetPair, bool) {
	seed, ok := FindNearest(position, track, ModeBoth)
	if !ok {
		return nil, false
	}
	return PhraseContaining(seed, track), true
}

// NextPhrase returns the phrase that follows the phrase at position, with
// at least one blick of gap between them. ok is false when there is none.
func NextPhrase(position host.Blick, track host.Track) ([]NoteOnsetPair, bool) {
	current, ok := PhraseAt(position, track)
	if !ok {
		return nil, false
	}
	last := current[len(current)-1]
	seed, ok := FindNearest(last.End()+1, track, ModeAfter)
	if !ok {
		return nil, false
	}
	return PhraseContaining(seed, track), true
}
