package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phrasekit/internal/host"
	"github.com/roach88/phrasekit/internal/score"
	"github.com/roach88/phrasekit/internal/timeline"
)

const q = float64(score.Quarter)

// delta absorbs the float error of a seconds round trip.
const delta = 1.0

// quarters builds a track with one group at onset 0 holding notes given as
// [onset, end) pairs in quarter notes.
func quarters(t *testing.T, spans ...[2]float64) (*score.Project, *score.Track) {
	t.Helper()
	p := score.NewProject(nil)
	tr := p.AddTrack("vocal")
	g := p.NewGroup("main")
	for _, s := range spans {
		onset := host.Blick(s[0] * q)
		g.AddNote(score.NewNote(onset, host.Blick(s[1]*q)-onset, 60, "a"))
	}
	tr.AddGroupReference(g.ID(), 0, 0, 0)
	return p, tr
}

func TestApplyPadding_Beats(t *testing.T) {
	axis := score.NewTimeAxis()
	got := ApplyPadding(Range{Start: q, End: 2 * q}, Padding{BeforeBeats: 0.25, AfterBeats: 0.5}, axis)

	assert.InDelta(t, 0.75*q, got.Start, delta)
	assert.InDelta(t, 2.5*q, got.End, delta)
}

func TestApplyPadding_SecondsAddToBeats(t *testing.T) {
	axis := score.NewTimeAxis() // 120 bpm, half a second per quarter
	pad := Padding{BeforeBeats: 0.25, AfterBeats: 0.25, BeforeSeconds: 0.5, AfterSeconds: 1}

	got := ApplyPadding(Range{Start: 4 * q, End: 5 * q}, pad, axis)

	assert.InDelta(t, 2.75*q, got.Start, delta)
	assert.InDelta(t, 7.25*q, got.End, delta)
}

func TestApplyPadding_FollowsTempoMap(t *testing.T) {
	// 60 bpm from quarter 4 onward: one second per quarter.
	axis := score.NewTimeAxis(score.TempoMark{Position: 4 * score.Quarter, BPM: 60})
	got := ApplyPadding(Range{Start: 6 * q, End: 6 * q}, Padding{BeforeSeconds: 1, AfterSeconds: 1}, axis)

	assert.InDelta(t, 5*q, got.Start, delta)
	assert.InDelta(t, 7*q, got.End, delta)
}

func TestApplyPadding_ZeroIsIdentity(t *testing.T) {
	axis := score.NewTimeAxis()
	r := Range{Start: 3 * q, End: 9 * q}
	got := ApplyPadding(r, Padding{}, axis)

	assert.InDelta(t, r.Start, got.Start, delta)
	assert.InDelta(t, r.End, got.End, delta)
}

func TestExcludeSurroundingNotes_ClampsBothSides(t *testing.T) {
	_, tr := quarters(t, [2]float64{0, 1}, [2]float64{2, 3}, [2]float64{4, 5})
	original := Range{Start: 2 * q, End: 3 * q}
	padded := Range{Start: 0, End: 5 * q}

	got := ExcludeSurroundingNotes(original, padded, tr, DefaultNeighborBias)

	assert.InDelta(t, 1.51*q, got.Start, delta)
	assert.InDelta(t, 3.49*q, got.End, delta)

	// The clamped start sits strictly inside the gap.
	assert.Greater(t, got.Start, q)
	assert.Less(t, got.Start, original.Start)
	assert.Greater(t, got.End, original.End)
	assert.Less(t, got.End, 4*q)
}

func TestExcludeSurroundingNotes_SmallPaddingUntouched(t *testing.T) {
	_, tr := quarters(t, [2]float64{0, 1}, [2]float64{2, 3}, [2]float64{4, 5})
	original := Range{Start: 2 * q, End: 3 * q}
	padded := Range{Start: 1.75 * q, End: 3.25 * q}

	assert.Equal(t, padded, ExcludeSurroundingNotes(original, padded, tr, DefaultNeighborBias))
}

func TestExcludeSurroundingNotes_NoNeighbors(t *testing.T) {
	_, tr := quarters(t, [2]float64{2, 3})
	original := Range{Start: 2 * q, End: 3 * q}
	padded := Range{Start: -10 * q, End: 30 * q}

	assert.Equal(t, padded, ExcludeSurroundingNotes(original, padded, tr, DefaultNeighborBias))
}

func TestExcludeSurroundingNotes_OverlappingNeighborKeepsOrder(t *testing.T) {
	p, tr := quarters(t, [2]float64{2, 3})
	// A second reference whose note overlaps the start of the original range.
	g := p.NewGroup("overlap")
	g.AddNote(score.NewNote(host.Blick(1.5*q), host.Blick(q), 60, "o"))
	tr.AddGroupReference(g.ID(), 0, 0, 0)

	original := Range{Start: 2 * q, End: 3 * q}
	got := ExcludeSurroundingNotes(original, Range{Start: q, End: 3 * q}, tr, DefaultNeighborBias)

	assert.Equal(t, original.Start, got.Start)
	assert.LessOrEqual(t, got.Start, got.End)
}

func TestExcludeSurroundingNotes_NeverInverts(t *testing.T) {
	_, tr := quarters(t, [2]float64{0, 1}, [2]float64{1.5, 1.75}, [2]float64{2, 3})
	for _, bias := range []float64{0, 0.25, DefaultNeighborBias, 1, 2} {
		original := Range{Start: 1.5 * q, End: 1.75 * q}
		got := ExcludeSurroundingNotes(original, Range{Start: -q, End: 9 * q}, tr, bias)
		assert.LessOrEqual(t, got.Start, got.End, "bias=%g", bias)
		assert.LessOrEqual(t, got.Start, original.Start, "bias=%g", bias)
		assert.GreaterOrEqual(t, got.End, original.End, "bias=%g", bias)
	}
}

func TestRangeOf(t *testing.T) {
	_, tr := quarters(t, [2]float64{0, 1}, [2]float64{1, 3})
	phrase, ok := timeline.PhraseAt(0, tr)
	require.True(t, ok)

	r, ok := RangeOf(phrase)
	require.True(t, ok)
	assert.Equal(t, Range{Start: 0, End: 3 * q}, r)
	assert.Equal(t, 3*q, r.Len())

	_, ok = RangeOf(nil)
	assert.False(t, ok)
}
