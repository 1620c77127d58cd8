package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phrasekit/internal/host"
)

func TestFindNextAndPrevious_SingleGroup(t *testing.T) {
	p, tr := newTrack(t)
	place(p, tr, 0, span{0, 10}, span{10, 10})

	next, ok := FindNext(5, tr)
	require.True(t, ok)
	assert.Equal(t, host.Blick(10), next.Onset)

	prev, ok := FindPrevious(15, tr)
	require.True(t, ok)
	assert.Equal(t, host.Blick(0), prev.Onset, "a note at onset 0 is a valid predecessor")
}

func TestFindPrevious_StrictlyBefore(t *testing.T) {
	p, tr := newTrack(t)
	place(p, tr, 0, span{0, 10}, span{10, 10})

	prev, ok := FindPrevious(10, tr)
	require.True(t, ok)
	assert.Equal(t, host.Blick(0), prev.Onset)

	_, ok = FindPrevious(0, tr)
	assert.False(t, ok)
}

func TestFindNext_AtPosition(t *testing.T) {
	p, tr := newTrack(t)
	place(p, tr, 0, span{0, 10}, span{10, 10})

	next, ok := FindNext(10, tr)
	require.True(t, ok)
	assert.Equal(t, host.Blick(10), next.Onset)

	_, ok = FindNext(11, tr)
	assert.False(t, ok)
}

func TestFindNextAndPrevious_AcrossGroups(t *testing.T) {
	p, tr := newTrack(t)
	a := place(p, tr, 0, span{0, 10}, span{100, 10})
	b := place(p, tr, 40, span{0, 10}, span{20, 10}) // absolute 40 and 60

	next, ok := FindNext(45, tr)
	require.True(t, ok)
	assert.Equal(t, host.Blick(60), next.Onset)
	assert.Same(t, b, next.Ref)

	prev, ok := FindPrevious(95, tr)
	require.True(t, ok)
	assert.Equal(t, host.Blick(60), prev.Onset)

	prev, ok = FindPrevious(30, tr)
	require.True(t, ok)
	assert.Equal(t, host.Blick(0), prev.Onset)
	assert.Same(t, a, prev.Ref)
}

func TestFindNearest_Both(t *testing.T) {
	p, tr := newTrack(t)
	place(p, tr, 0, span{0, 10}, span{20, 10})

	cases := []struct {
		name     string
		position host.Blick
		want     host.Blick
	}{
		{"inside first note", 5, 0},
		{"gap nearer the previous end", 12, 0},
		{"gap nearer the next onset", 17, 20},
		{"exactly on the next onset", 20, 20},
		{"past the last note", 35, 20},
		{"before the first note", -4, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pair, ok := FindNearest(tc.position, tr, ModeBoth)
			require.True(t, ok)
			assert.Equal(t, tc.want, pair.Onset)
		})
	}
}

func TestFindNearest_BeforeAndAfter(t *testing.T) {
	p, tr := newTrack(t)
	place(p, tr, 0, span{0, 10}, span{20, 10})

	pair, ok := FindNearest(20, tr, ModeBefore)
	require.True(t, ok)
	assert.Equal(t, host.Blick(0), pair.Onset)

	pair, ok = FindNearest(50, tr, ModeBefore)
	require.True(t, ok)
	assert.Equal(t, host.Blick(20), pair.Onset)

	_, ok = FindNearest(-5, tr, ModeBefore)
	assert.False(t, ok)

	pair, ok = FindNearest(11, tr, ModeAfter)
	require.True(t, ok)
	assert.Equal(t, host.Blick(20), pair.Onset)

	_, ok = FindNearest(21, tr, ModeAfter)
	assert.False(t, ok)
}

func TestFindNearest_PicksClosestReference(t *testing.T) {
	p, tr := newTrack(t)
	place(p, tr, 0, span{0, 10})
	far := place(p, tr, 100, span{0, 10})

	pair, ok := FindNearest(90, tr, ModeBoth)
	require.True(t, ok)
	assert.Same(t, far, pair.Ref)
	assert.Equal(t, host.Blick(100), pair.Onset)
}

func TestFindNearest_TieKeepsFirstReference(t *testing.T) {
	p, tr := newTrack(t)
	first := place(p, tr, 0, span{0, 10})
	place(p, tr, 20, span{0, 10})

	pair, ok := FindNearest(15, tr, ModeBoth)
	require.True(t, ok)
	assert.Same(t, first, pair.Ref)
}

func TestFindNearest_EmptyTrack(t *testing.T) {
	p, tr := newTrack(t)
	place(p, tr, 0)

	_, ok := FindNearest(0, tr, ModeBoth)
	assert.False(t, ok)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeBoth, ModeBefore, ModeAfter} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("sideways")
	assert.Error(t, err)
}
