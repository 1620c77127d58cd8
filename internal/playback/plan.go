package playback

import (
	"math"

	"github.com/roach88/phrasekit/internal/host"
	"github.com/roach88/phrasekit/internal/timeline"
)

// Options controls how a loop range is derived from notes.
type Options struct {
	Padding            Padding
	ExcludeSurrounding bool
	NeighborBias       float64
}

// DefaultOptions pads a sixteenth note on each side and keeps clear of
// neighboring notes.
func DefaultOptions() Options {
	return Options{
		Padding:            Padding{BeforeBeats: 0.25, AfterBeats: 0.25},
		ExcludeSurrounding: true,
		NeighborBias:       DefaultNeighborBias,
	}
}

// Plan is a loop ready to hand to the transport.
type Plan struct {
	Notes    []timeline.NoteOnsetPair
	Original Range
	Range    Range

	StartSeconds float64
	EndSeconds   float64
}

// NewPlan spans pairs, pads the span and optionally keeps it clear of the
// surrounding notes on track. pairs must be in timeline order; ok is false
// when there are none.
func NewPlan(pairs []timeline.NoteOnsetPair, track host.Track, axis host.TimeAxis, opts Options) (Plan, bool) {
	original, ok := RangeOf(pairs)
	if !ok {
		return Plan{}, false
	}
	r := ApplyPadding(original, opts.Padding, axis)
	if opts.ExcludeSurrounding {
		bias := opts.NeighborBias
		if bias == 0 {
			bias = DefaultNeighborBias
		}
		r = ExcludeSurroundingNotes(original, r, track, bias)
	}
	return Plan{
		Notes:        pairs,
		Original:     original,
		Range:        r,
		StartSeconds: axis.SecondsFromBlick(r.Start),
		EndSeconds:   axis.SecondsFromBlick(r.End),
	}, true
}

// PlanPhraseAt plans a loop over the phrase under the playhead.
func PlanPhraseAt(track host.Track, axis host.TimeAxis, playheadSeconds float64, opts Options) (Plan, bool) {
	phrase, ok := timeline.PhraseAt(playheadBlick(axis, playheadSeconds), track)
	if !ok {
		return Plan{}, false
	}
	return NewPlan(phrase, track, axis, opts)
}

// PlanNextPhrase plans a loop over the phrase after the one under the
// playhead. ok is false when the playhead is in the last phrase.
func PlanNextPhrase(track host.Track, axis host.TimeAxis, playheadSeconds float64, opts Options) (Plan, bool) {
	phrase, ok := timeline.NextPhrase(playheadBlick(axis, playheadSeconds), track)
	if !ok {
		return Plan{}, false
	}
	return NewPlan(phrase, track, axis, opts)
}

// PlanSelection plans a loop over selected notes in any order.
func PlanSelection(pairs []timeline.NoteOnsetPair, track host.Track, axis host.TimeAxis, opts Options) (Plan, bool) {
	sorted := append([]timeline.NoteOnsetPair(nil), pairs...)
	timeline.SortPairs(sorted)
	return NewPlan(sorted, track, axis, opts)
}

func playheadBlick(axis host.TimeAxis, seconds float64) host.Blick {
	return host.Blick(math.Round(axis.BlickFromSeconds(seconds)))
}
