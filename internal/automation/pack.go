package automation

import (
	"errors"
	"log/slog"

	"github.com/roach88/phrasekit/internal/host"
	"github.com/roach88/phrasekit/internal/score"
	"github.com/roach88/phrasekit/internal/timeline"
)

// ErrNoGroupSelected is returned by Pack when there is no child to pack into.
var ErrNoGroupSelected = errors.New("no group is selected")

// Window is a packing window in parent-local blicks. Offset converts parent
// time to child time: child = parent - Offset.
type Window struct {
	Start  host.Blick `json:"start"`
	End    host.Blick `json:"end"`
	Offset host.Blick `json:"offset"`
}

// MoveRangeIntoChild transfers parent's curve over [start, end] into child
// and reports whether anything was moved. Nothing happens when the window
// holds no control points and the parent sits at its default at both edges.
//
// start <= end is a precondition; it is not checked.
func MoveRangeIntoChild(parent, child host.Automation, start, end, offset host.Blick) bool {
	def := parent.Default()
	points := parent.Points(start, end)
	startValue := parent.Value(start)
	endValue := parent.Value(end)
	if len(points) == 0 && startValue == def && endValue == def {
		return false
	}

	childStart := child.Value(start - offset)
	childEnd := child.Value(end - offset)
	childAt := make([]float64, len(points))
	for i, p := range points {
		childAt[i] = child.Value(p.Time - offset)
	}
	before := parent.Value(start - 1)
	after := parent.Value(end + 1)

	child.Add(start-offset-1, def)
	child.Add(start-offset, childStart+startValue)
	for i, p := range points {
		child.Add(p.Time-offset, childAt[i]+p.Value)
	}
	child.Add(end-offset, childEnd+endValue)
	child.Add(end-offset+1, def)

	for _, p := range points {
		parent.Remove(p.Time)
	}
	parent.Add(start-1, before)
	parent.Add(start, def)
	parent.Add(end, def)
	parent.Add(end+1, after)
	return true
}

// PackWindow returns the window of parent covered by child, widened toward
// the surrounding notes on track by at most padBefore and padAfter and never
// past the midpoint of the gap to a neighbor.
func PackWindow(track host.Track, parent, child host.GroupRef, padBefore, padAfter host.Blick) Window {
	offset := child.Onset() - parent.Onset()
	w := Window{Start: offset, End: offset + child.Duration(), Offset: offset}

	if prev, ok := timeline.FindPrevious(child.Onset(), track); ok {
		edge := prev.End() - parent.Onset()
		w.Start = max(midpoint(w.Start, edge), w.Start-padBefore)
	}
	if next, ok := timeline.FindNext(child.Onset()+child.Duration(), track); ok {
		edge := next.Onset - parent.Onset()
		w.End = min(midpoint(w.End, edge), w.End+padAfter)
	}
	return w
}

// midpoint rounds (a+b)/2 toward negative infinity.
func midpoint(a, b host.Blick) host.Blick {
	sum := a + b
	if sum < 0 && sum%2 != 0 {
		return sum/2 - 1
	}
	return sum / 2
}

// Options selects the parameters to pack and how far past the child the
// window may reach.
type Options struct {
	PaddingBeforeBeats float64
	PaddingAfterBeats  float64
	Parameters         []host.ParamType
}

// DefaultOptions reaches a sixteenth note past the child and packs every
// parameter type.
func DefaultOptions() Options {
	return Options{
		PaddingBeforeBeats: 0.25,
		PaddingAfterBeats:  0.25,
		Parameters:         append([]host.ParamType(nil), host.ParamTypes...),
	}
}

// Report describes one packed child.
type Report struct {
	Child  string           `json:"child"`
	Window Window           `json:"window"`
	Packed []host.ParamType `json:"packed"`
}

// PackGroup packs every configured parameter of parent into child.
func PackGroup(track host.Track, parent, child host.GroupRef, opts Options) Report {
	padBefore := host.Blick(opts.PaddingBeforeBeats * float64(score.Quarter))
	padAfter := host.Blick(opts.PaddingAfterBeats * float64(score.Quarter))
	w := PackWindow(track, parent, child, padBefore, padAfter)

	report := Report{Window: w, Packed: []host.ParamType{}}
	parentGroup, childGroup := parent.Target(), child.Target()
	if parentGroup == nil || childGroup == nil {
		return report
	}
	report.Child = childGroup.ID()

	for _, kind := range opts.Parameters {
		moved := MoveRangeIntoChild(parentGroup.Parameter(kind), childGroup.Parameter(kind), w.Start, w.End, w.Offset)
		if !moved {
			continue
		}
		report.Packed = append(report.Packed, kind)
		slog.Debug("parameter packed",
			"kind", kind,
			"child", childGroup.ID(),
			"start", w.Start,
			"end", w.End,
		)
	}
	return report
}

// Pack packs parent into each child in turn.
func Pack(track host.Track, parent host.GroupRef, children []host.GroupRef, opts Options) ([]Report, error) {
	if len(children) == 0 {
		return nil, ErrNoGroupSelected
	}
	reports := make([]Report, 0, len(children))
	for _, child := range children {
		reports = append(reports, PackGroup(track, parent, child, opts))
	}
	return reports, nil
}
