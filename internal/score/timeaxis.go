package score

import (
	"sort"

	"github.com/roach88/phrasekit/internal/host"
)

// Quarter is the length of a quarter note in blicks.
const Quarter host.Blick = 705600000

// DefaultBPM is the tempo of a project without tempo marks.
const DefaultBPM = 120.0

// TempoMark sets the tempo from Position onward.
type TempoMark struct {
	Position host.Blick
	BPM      float64
}

// TimeAxis is a piecewise-constant tempo map. The first mark always sits at
// position 0; positions before it use the first tempo.
type TimeAxis struct {
	marks []TempoMark
}

var _ host.TimeAxis = (*TimeAxis)(nil)

// NewTimeAxis builds a tempo map from marks. Marks are sorted by position; a
// mark at 0 with DefaultBPM is inserted when none is given there, and a later
// mark at the same position replaces an earlier one.
func NewTimeAxis(marks ...TempoMark) *TimeAxis {
	sorted := append([]TempoMark(nil), marks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	out := make([]TempoMark, 0, len(sorted)+1)
	if len(sorted) == 0 || sorted[0].Position > 0 {
		out = append(out, TempoMark{Position: 0, BPM: DefaultBPM})
	}
	for _, m := range sorted {
		if m.Position < 0 {
			m.Position = 0
		}
		if len(out) > 0 && out[len(out)-1].Position == m.Position {
			out[len(out)-1] = m
			continue
		}
		out = append(out, m)
	}
	return &TimeAxis{marks: out}
}

// Marks returns the tempo marks in position order.
func (a *TimeAxis) Marks() []TempoMark {
	return append([]TempoMark(nil), a.marks...)
}

func (a *TimeAxis) SecondsFromBlick(b float64) float64 {
	var seconds float64
	for i, m := range a.marks {
		start := float64(m.Position)
		if i+1 < len(a.marks) {
			next := float64(a.marks[i+1].Position)
			if b > next {
				seconds += (next - start) * secondsPerBlick(m.BPM)
				continue
			}
		}
		return seconds + (b-start)*secondsPerBlick(m.BPM)
	}
	return seconds
}

func (a *TimeAxis) BlickFromSeconds(seconds float64) float64 {
	var elapsed float64
	for i, m := range a.marks {
		start := float64(m.Position)
		if i+1 < len(a.marks) {
			span := (float64(a.marks[i+1].Position) - start) * secondsPerBlick(m.BPM)
			if seconds > elapsed+span {
				elapsed += span
				continue
			}
		}
		return start + (seconds-elapsed)/secondsPerBlick(m.BPM)
	}
	return 0
}

func secondsPerBlick(bpm float64) float64 {
	return 60 / (bpm * float64(Quarter))
}
