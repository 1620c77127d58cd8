package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phrasekit/internal/host"
)

func TestTimeAxis_DefaultTempo(t *testing.T) {
	axis := NewTimeAxis()
	require.Len(t, axis.Marks(), 1)

	assert.InDelta(t, 0.5, axis.SecondsFromBlick(float64(Quarter)), 1e-12)
	assert.InDelta(t, float64(4*Quarter), axis.BlickFromSeconds(2), 1e-3)
}

func TestTimeAxis_TempoChange(t *testing.T) {
	axis := NewTimeAxis(
		TempoMark{Position: 2 * Quarter, BPM: 60},
		TempoMark{Position: 0, BPM: 120},
	)

	// Two quarters at 120 then one at 60.
	assert.InDelta(t, 2.0, axis.SecondsFromBlick(float64(3*Quarter)), 1e-9)
	assert.InDelta(t, float64(3*Quarter), axis.BlickFromSeconds(2.0), 1e-3)
	assert.InDelta(t, float64(Quarter), axis.BlickFromSeconds(0.5), 1e-3)
}

func TestTimeAxis_RoundTrip(t *testing.T) {
	axis := NewTimeAxis(
		TempoMark{Position: 0, BPM: 97},
		TempoMark{Position: 5 * Quarter, BPM: 143.5},
	)
	for _, b := range []host.Blick{0, Quarter / 3, 5 * Quarter, 11*Quarter + 17} {
		got := axis.BlickFromSeconds(axis.SecondsFromBlick(float64(b)))
		assert.InDelta(t, float64(b), got, 1e-2, "blick %d", b)
	}
}

func TestNewTimeAxis_Normalizes(t *testing.T) {
	axis := NewTimeAxis(
		TempoMark{Position: Quarter, BPM: 100},
		TempoMark{Position: Quarter, BPM: 150},
	)
	assert.Equal(t, []TempoMark{
		{Position: 0, BPM: DefaultBPM},
		{Position: Quarter, BPM: 150},
	}, axis.Marks())
}
