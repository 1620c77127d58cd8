package harness

import (
	"fmt"
	"math"
	"slices"

	"github.com/roach88/phrasekit/internal/host"
	"github.com/roach88/phrasekit/internal/playback"
	"github.com/roach88/phrasekit/internal/score"
	"github.com/roach88/phrasekit/internal/timeline"
)

// Run decodes the scenario project, executes every step in order against
// the selected track and checks each expect clause. A step mismatch fails
// the result; only an undecodable project or a bad mode returns an error.
func Run(scenario *Scenario) (*Result, error) {
	project, err := score.Decode(scenario.Project)
	if err != nil {
		return nil, fmt.Errorf("failed to decode project: %w", err)
	}
	track := project.Track(scenario.Track)
	if track == nil {
		return nil, fmt.Errorf("track %d not found", scenario.Track)
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		event, err := execute(project, track, step)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		event.Step = i
		result.Trace = append(result.Trace, event)
		if step.Expect != nil {
			check(result, i, event, step.Expect)
		}
	}
	return result, nil
}

func execute(project *score.Project, track *score.Track, step Step) (TraceEvent, error) {
	pos := host.Blick(step.Position)
	event := TraceEvent{Op: step.Op, Position: step.Position}

	switch step.Op {
	case OpAtOrAfter:
		ref := track.Ref(step.Ref)
		if n, ok := timeline.FindAtOrAfter(pos, ref); ok {
			event.Found = true
			event.Onsets = []int64{int64(timeline.AbsoluteOnset(n, ref))}
		}

	case OpPrevious:
		event.setPair(timeline.FindPrevious(pos, track))

	case OpNext:
		event.setPair(timeline.FindNext(pos, track))

	case OpNearest:
		mode := timeline.ModeBoth
		if step.Mode != "" {
			var err error
			if mode, err = timeline.ParseMode(step.Mode); err != nil {
				return event, err
			}
		}
		event.setPair(timeline.FindNearest(pos, track, mode))

	case OpPhrase:
		if phrase, ok := timeline.PhraseAt(pos, track); ok {
			event.Found = true
			event.Onsets = pairOnsets(phrase)
		}

	case OpLoopRange:
		axis := project.TimeAxis()
		opts := playback.Options{ExcludeSurrounding: step.Exclude}
		if p := step.Padding; p != nil {
			opts.Padding = playback.Padding{
				BeforeBeats:   p.BeforeBeats,
				AfterBeats:    p.AfterBeats,
				BeforeSeconds: p.BeforeSeconds,
				AfterSeconds:  p.AfterSeconds,
			}
		}
		seconds := axis.SecondsFromBlick(float64(pos))
		plan, ok := playback.PlanPhraseAt(track, axis, seconds, opts)
		if step.Next {
			plan, ok = playback.PlanNextPhrase(track, axis, seconds, opts)
		}
		if ok {
			start := int64(math.Round(plan.Range.Start))
			end := int64(math.Round(plan.Range.End))
			event.Found = true
			event.Onsets = pairOnsets(plan.Notes)
			event.Start = &start
			event.End = &end
		}

	default:
		return event, fmt.Errorf("unknown op %q", step.Op)
	}
	return event, nil
}

func (e *TraceEvent) setPair(pair timeline.NoteOnsetPair, ok bool) {
	if !ok {
		return
	}
	e.Found = true
	e.Onsets = []int64{int64(pair.Onset)}
}

func pairOnsets(pairs []timeline.NoteOnsetPair) []int64 {
	out := make([]int64, len(pairs))
	for i, p := range pairs {
		out[i] = int64(p.Onset)
	}
	return out
}

func check(result *Result, index int, got TraceEvent, want *Expect) {
	if want.Found != nil && *want.Found != got.Found {
		result.AddError(fmt.Sprintf("steps[%d] %s: found = %v, want %v", index, got.Op, got.Found, *want.Found))
	}
	if want.Onsets != nil && !slices.Equal(want.Onsets, got.Onsets) {
		result.AddError(fmt.Sprintf("steps[%d] %s: onsets = %v, want %v", index, got.Op, got.Onsets, want.Onsets))
	}
	if want.Start != nil && (got.Start == nil || *got.Start != *want.Start) {
		result.AddError(fmt.Sprintf("steps[%d] %s: start = %s, want %d", index, got.Op, show(got.Start), *want.Start))
	}
	if want.End != nil && (got.End == nil || *got.End != *want.End) {
		result.AddError(fmt.Sprintf("steps[%d] %s: end = %s, want %d", index, got.Op, show(got.End), *want.End))
	}
}

func show(v *int64) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprint(*v)
}
