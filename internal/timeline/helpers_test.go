package timeline

import (
	"testing"

	"github.com/roach88/phrasekit/internal/host"
	"github.com/roach88/phrasekit/internal/score"
)

// span is a [onset, onset+dur) note in group-local blicks.
type span struct {
	onset host.Blick
	dur   host.Blick
}

// newTrack creates a project with a single empty track.
func newTrack(t *testing.T) (*score.Project, *score.Track) {
	t.Helper()
	p := score.NewProject(nil)
	p.SetIDGenerator(score.NewFixedGenerator("g1", "g2", "g3", "g4", "g5"))
	return p, p.AddTrack("vocal")
}

// place adds a new group holding notes and references it at refOnset.
func place(p *score.Project, tr *score.Track, refOnset host.Blick, notes ...span) *score.GroupRef {
	g := p.NewGroup("")
	for _, n := range notes {
		g.AddNote(score.NewNote(n.onset, n.dur, 60, "la"))
	}
	return tr.AddGroupReference(g.ID(), refOnset, 0, 0)
}

func onsets(pairs []NoteOnsetPair) []host.Blick {
	out := make([]host.Blick, len(pairs))
	for i, p := range pairs {
		out[i] = p.Onset
	}
	return out
}
