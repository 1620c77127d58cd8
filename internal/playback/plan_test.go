package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phrasekit/internal/host"
	"github.com/roach88/phrasekit/internal/score"
	"github.com/roach88/phrasekit/internal/timeline"
)

func twoPhrases(t *testing.T) (*score.Project, *score.Track) {
	return quarters(t,
		[2]float64{0, 1}, [2]float64{1, 2},
		[2]float64{3, 4}, [2]float64{4, 5},
	)
}

func TestPlanNextPhrase(t *testing.T) {
	p, tr := twoPhrases(t)

	plan, ok := PlanNextPhrase(tr, p.TimeAxis(), 0.25, DefaultOptions())
	require.True(t, ok)

	require.Len(t, plan.Notes, 2)
	assert.Equal(t, Range{Start: 3 * q, End: 5 * q}, plan.Original)
	assert.InDelta(t, 2.75*q, plan.Range.Start, delta)
	assert.InDelta(t, 5.25*q, plan.Range.End, delta)
	assert.InDelta(t, 1.375, plan.StartSeconds, 1e-9)
	assert.InDelta(t, 2.625, plan.EndSeconds, 1e-9)
}

func TestPlanNextPhrase_LastPhrase(t *testing.T) {
	p, tr := twoPhrases(t)

	_, ok := PlanNextPhrase(tr, p.TimeAxis(), 2.0, DefaultOptions())
	assert.False(t, ok)
}

func TestPlanPhraseAt_ExcludesNeighbors(t *testing.T) {
	p, tr := twoPhrases(t)
	opts := DefaultOptions()
	opts.Padding = Padding{BeforeBeats: 4, AfterBeats: 4}

	plan, ok := PlanPhraseAt(tr, p.TimeAxis(), 2.0, opts)
	require.True(t, ok)

	assert.Equal(t, Range{Start: 3 * q, End: 5 * q}, plan.Original)
	assert.InDelta(t, 2.51*q, plan.Range.Start, delta)
	assert.InDelta(t, 9*q, plan.Range.End, delta, "nothing follows, so the padding stays")
}

func TestPlanPhraseAt_WithoutExclusion(t *testing.T) {
	p, tr := twoPhrases(t)
	opts := Options{Padding: Padding{BeforeBeats: 4}}

	plan, ok := PlanPhraseAt(tr, p.TimeAxis(), 2.0, opts)
	require.True(t, ok)
	assert.InDelta(t, -1*q, plan.Range.Start, delta)
}

func TestPlanPhraseAt_EmptyTrack(t *testing.T) {
	p, tr := quarters(t)
	_, ok := PlanPhraseAt(tr, p.TimeAxis(), 0, DefaultOptions())
	assert.False(t, ok)
}

func TestPlanSelection_SortsPairs(t *testing.T) {
	p, tr := twoPhrases(t)
	ref := tr.Ref(0)
	notes := ref.Group().Notes()

	pairs := []timeline.NoteOnsetPair{
		timeline.NewPair(notes[2], ref),
		timeline.NewPair(notes[0], ref),
	}
	plan, ok := PlanSelection(pairs, tr, p.TimeAxis(), Options{})
	require.True(t, ok)

	assert.Equal(t, host.Blick(0), plan.Notes[0].Onset)
	assert.Equal(t, Range{Start: 0, End: 4 * q}, plan.Original)
	assert.Equal(t, host.Blick(3*q), pairs[0].Onset, "input order is left alone")
}
