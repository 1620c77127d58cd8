package playback

import (
	"math"

	"github.com/roach88/phrasekit/internal/host"
	"github.com/roach88/phrasekit/internal/score"
	"github.com/roach88/phrasekit/internal/timeline"
)

// DefaultNeighborBias is how far past the midpoint of a gap the padded range
// may reach toward a neighboring note.
const DefaultNeighborBias = 0.51

// Range is a span of the timeline in fractional blicks.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Len returns End - Start.
func (r Range) Len() float64 { return r.End - r.Start }

// RangeOf spans pairs from the first onset to the last end. pairs must be
// in timeline order.
func RangeOf(pairs []timeline.NoteOnsetPair) (Range, bool) {
	start, end, ok := timeline.Span(pairs)
	if !ok {
		return Range{}, false
	}
	return Range{Start: float64(start), End: float64(end)}, true
}

// Padding widens a range on both sides. Beat and second amounts add up.
type Padding struct {
	BeforeBeats   float64 `json:"before_beats"`
	AfterBeats    float64 `json:"after_beats"`
	BeforeSeconds float64 `json:"before_seconds"`
	AfterSeconds  float64 `json:"after_seconds"`
}

// ApplyPadding expands r by the beat padding in blicks, converts to seconds,
// adds the second padding and converts back.
func ApplyPadding(r Range, pad Padding, axis host.TimeAxis) Range {
	quarter := float64(score.Quarter)
	start := axis.SecondsFromBlick(r.Start-pad.BeforeBeats*quarter) - pad.BeforeSeconds
	end := axis.SecondsFromBlick(r.End+pad.AfterBeats*quarter) + pad.AfterSeconds
	return Range{
		Start: axis.BlickFromSeconds(start),
		End:   axis.BlickFromSeconds(end),
	}
}

// ExcludeSurroundingNotes pulls padded back from the notes right before and
// right after original. The start may move no earlier than
// prevEnd + (original.Start - prevEnd) * bias, and the end symmetrically.
// The limits never cross into original itself, so the result always covers
// original and Start <= End holds.
func ExcludeSurroundingNotes(original, padded Range, track host.Track, bias float64) Range {
	out := padded

	if prev, ok := timeline.FindPrevious(host.Blick(math.Ceil(original.Start)), track); ok {
		prevEnd := float64(prev.End())
		limit := math.Min(prevEnd+(original.Start-prevEnd)*bias, original.Start)
		if out.Start < limit {
			out.Start = limit
		}
	}

	if next, ok := timeline.FindNext(host.Blick(math.Floor(original.End)), track); ok {
		nextStart := float64(next.Onset)
		limit := math.Max(nextStart-(nextStart-original.End)*bias, original.End)
		if out.End > limit {
			out.End = limit
		}
	}

	return out
}
