package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phrasekit/internal/host"
)

func TestFindAtOrAfter_Literals(t *testing.T) {
	p, tr := newTrack(t)
	ref := place(p, tr, 0, span{0, 10}, span{10, 10}, span{20, 10})

	n, ok := FindAtOrAfter(15, ref)
	require.True(t, ok)
	assert.Equal(t, host.Blick(20), n.Onset())

	n, ok = FindAtOrAfter(20, ref)
	require.True(t, ok)
	assert.Equal(t, host.Blick(20), n.Onset(), "exact match returns that note")

	_, ok = FindAtOrAfter(25, ref)
	assert.False(t, ok, "past the last onset there is nothing")
}

func TestFindAtOrAfter_BeforeFirstNote(t *testing.T) {
	p, tr := newTrack(t)
	ref := place(p, tr, 0, span{5, 5}, span{10, 10})

	n, ok := FindAtOrAfter(-100, ref)
	require.True(t, ok)
	assert.Equal(t, 0, n.IndexInParent())
}

func TestFindAtOrAfter_EmptyGroup(t *testing.T) {
	p, tr := newTrack(t)
	ref := place(p, tr, 0)

	_, ok := FindAtOrAfter(0, ref)
	assert.False(t, ok)
	assert.Equal(t, 0, IndexAtOrAfter(0, ref))
}

func TestFindAtOrAfter_ReferenceOffset(t *testing.T) {
	p, tr := newTrack(t)
	ref := place(p, tr, 1000, span{0, 10}, span{10, 10})

	// 1005 is local 5, so the next onset is local 10.
	n, ok := FindAtOrAfter(1005, ref)
	require.True(t, ok)
	assert.Equal(t, host.Blick(10), n.Onset())
	assert.Equal(t, host.Blick(1010), AbsoluteOnset(n, ref))
}

func TestFindAtOrAfter_MatchesLinearScan(t *testing.T) {
	for count := 1; count <= 9; count++ {
		p, tr := newTrack(t)
		notes := make([]span, count)
		for i := range notes {
			// Uneven gaps so that halving lands between notes.
			notes[i] = span{onset: host.Blick(i*i*3 + i), dur: 1}
		}
		ref := place(p, tr, 7, notes...)

		last := notes[count-1].onset + 7
		for target := host.Blick(0); target <= last+2; target++ {
			want := -1
			for i, n := range notes {
				if n.onset+7 >= target {
					want = i
					break
				}
			}

			got, ok := FindAtOrAfter(target, ref)
			if want < 0 {
				assert.False(t, ok, "count=%d target=%d", count, target)
				continue
			}
			require.True(t, ok, "count=%d target=%d", count, target)
			assert.Equal(t, want, got.IndexInParent(), "count=%d target=%d", count, target)
		}
	}
}

func TestAbsoluteOnset_RefreshAfterMove(t *testing.T) {
	p, tr := newTrack(t)
	ref := place(p, tr, 100, span{10, 10})
	pair := NewPair(ref.Group().Notes()[0], ref)
	assert.Equal(t, host.Blick(110), pair.Onset)

	ref.SetOnset(200)
	pair.Refresh()
	assert.Equal(t, host.Blick(210), pair.Onset)
	assert.Equal(t, host.Blick(220), pair.End())
}
