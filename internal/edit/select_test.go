package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phrasekit/internal/host"
	"github.com/roach88/phrasekit/internal/score"
)

func groupAt(t *testing.T, refOnset host.Blick, spans ...[2]host.Blick) (*score.Track, *score.GroupRef) {
	t.Helper()
	p := score.NewProject(nil)
	tr := p.AddTrack("vocal")
	g := p.NewGroup("main")
	for _, s := range spans {
		g.AddNote(score.NewNote(s[0], s[1]-s[0], 60, "la"))
	}
	return tr, tr.AddGroupReference(g.ID(), refOnset, 0, 0)
}

func TestSelectNext_FromSelection(t *testing.T) {
	_, ref := groupAt(t, 100, [2]host.Blick{0, 10}, [2]host.Blick{20, 30}, [2]host.Blick{40, 50})
	notes := ref.Group().Notes()

	got, ok := SelectNext(ref, []host.Note{notes[0]}, 0)
	require.True(t, ok)
	assert.Equal(t, 1, got.IndexInParent())

	got, ok = SelectNext(ref, []host.Note{notes[2]}, 0)
	require.True(t, ok)
	assert.Equal(t, 2, got.IndexInParent(), "the last note stays selected")

	got, ok = SelectNext(ref, []host.Note{notes[1], notes[0]}, 0)
	require.True(t, ok)
	assert.Equal(t, 1, got.IndexInParent(), "several selected keeps the first")
}

func TestSelectNext_FromPlayhead(t *testing.T) {
	_, ref := groupAt(t, 100, [2]host.Blick{0, 10}, [2]host.Blick{20, 30}, [2]host.Blick{40, 50})

	cases := []struct {
		playhead host.Blick
		want     int
	}{
		{50, 0},  // before the group
		{112, 0}, // first half of the gap
		{118, 1}, // second half of the gap
		{120, 1},
		{135, 2},
	}
	for _, tc := range cases {
		got, ok := SelectNext(ref, nil, tc.playhead)
		require.True(t, ok, "playhead %d", tc.playhead)
		assert.Equal(t, tc.want, got.IndexInParent(), "playhead %d", tc.playhead)
	}

	_, ok := SelectNext(ref, nil, 200)
	assert.False(t, ok)
}
