package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phrasekit/internal/host"
)

func TestGrid_Snap(t *testing.T) {
	g := Grid{Step: 8}
	assert.Equal(t, host.Blick(8), g.Snap(10))
	assert.Equal(t, host.Blick(16), g.Snap(13))
	assert.Equal(t, host.Blick(13), Grid{}.Snap(13))
}

func TestFitEdge_MovesSharedEnd(t *testing.T) {
	tr, ref := groupAt(t, 0, [2]host.Blick{0, 10}, [2]host.Blick{10, 20})
	notes := ref.Group().Notes()

	res, ok := FitEdge(tr, 8, Grid{Step: 8}, ref, nil)
	require.True(t, ok)
	require.True(t, res.Moved())

	assert.False(t, res.Snapped)
	assert.Equal(t, host.Blick(8), res.Edge)
	assert.Equal(t, host.Blick(8), notes[0].Duration())
	assert.Equal(t, host.Blick(8), notes[1].Onset())
	assert.Equal(t, host.Blick(12), notes[1].Duration())
	assert.Equal(t, host.Blick(8), res.After.Onset)
}

func TestFitEdge_AlreadyFitSnaps(t *testing.T) {
	tr, ref := groupAt(t, 0, [2]host.Blick{0, 10}, [2]host.Blick{10, 20})
	notes := ref.Group().Notes()

	res, ok := FitEdge(tr, 10, Grid{Step: 8}, ref, nil)
	require.True(t, ok)

	assert.True(t, res.Snapped)
	assert.Equal(t, host.Blick(8), res.Edge)
	assert.Equal(t, host.Blick(8), notes[0].Duration())
	assert.Equal(t, host.Blick(8), notes[1].Onset())
}

func TestFitEdge_SnapOutsideNotesIsDropped(t *testing.T) {
	tr, ref := groupAt(t, 0, [2]host.Blick{4, 10}, [2]host.Blick{10, 12})
	notes := ref.Group().Notes()

	res, ok := FitEdge(tr, 10, Grid{Step: 32}, ref, nil)
	require.True(t, ok)

	assert.False(t, res.Moved())
	assert.Equal(t, host.Blick(6), notes[0].Duration())
	assert.Equal(t, host.Blick(10), notes[1].Onset())
}

func TestFitEdge_SingleNoteOnset(t *testing.T) {
	tr, ref := groupAt(t, 100, [2]host.Blick{0, 10})
	note := ref.Group().Notes()[0]

	res, ok := FitEdge(tr, 103, nil, ref, nil)
	require.True(t, ok)

	assert.Nil(t, res.Before)
	require.NotNil(t, res.After)
	assert.Equal(t, host.Blick(3), note.Onset())
	assert.Equal(t, host.Blick(7), note.Duration())
}

func TestFitEdge_SelectionPicksEdge(t *testing.T) {
	tr, ref := groupAt(t, 0, [2]host.Blick{0, 10}, [2]host.Blick{10, 20}, [2]host.Blick{20, 30})
	notes := ref.Group().Notes()

	// 13 is in the first half of the middle note, so its onset would be
	// chosen; selecting it with the next note picks its end instead.
	res, ok := FitEdge(tr, 13, nil, ref, []host.Note{notes[2], notes[1]})
	require.True(t, ok)
	require.True(t, res.Moved())

	assert.Equal(t, host.Blick(10), notes[1].Onset())
	assert.Equal(t, host.Blick(3), notes[1].Duration())
	assert.Equal(t, host.Blick(13), notes[2].Onset())
	assert.Equal(t, host.Blick(17), notes[2].Duration())
}

func TestFitEdge_EmptyTrack(t *testing.T) {
	tr, ref := groupAt(t, 0)
	_, ok := FitEdge(tr, 0, nil, ref, nil)
	assert.False(t, ok)
}
