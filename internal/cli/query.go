package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/phrasekit/internal/edit"
	"github.com/roach88/phrasekit/internal/playback"
	"github.com/roach88/phrasekit/internal/timeline"
)

// PhraseResult is the output of the phrase command.
type PhraseResult struct {
	Start int64      `json:"start"`
	End   int64      `json:"end"`
	Notes []NoteView `json:"notes"`
}

func (r PhraseResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "phrase %d-%d (%d notes)", r.Start, r.End, len(r.Notes))
	for _, n := range r.Notes {
		fmt.Fprintf(&b, "\n  %s", n)
	}
	return b.String()
}

// NewPhraseCommand creates the phrase command.
func NewPhraseCommand(rootOpts *RootOptions) *cobra.Command {
	var next bool

	cmd := &cobra.Command{
		Use:   "phrase <position>",
		Short: "Show the phrase at a position",
		Long: `Show the run of gap-free notes around the note nearest to position.

Examples:
  phrasekit phrase 705600000 --file song.yaml
  phrasekit phrase 0 --next --db songs.db --project demo --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parseBlick(args[0])
			if err != nil {
				return err
			}
			w, err := openWorkspace(cmd.Context(), rootOpts, cmd)
			if err != nil {
				return err
			}
			defer w.close()
			track, err := w.track()
			if err != nil {
				return err
			}

			phrase, ok := timeline.PhraseAt(pos, track)
			if next {
				phrase, ok = timeline.NextPhrase(pos, track)
			}
			if !ok {
				return w.out.Fail(ExitFailure, ErrCodeNoNotes, "no phrase found", nil)
			}
			start, end, _ := timeline.Span(phrase)
			return w.out.Success(PhraseResult{Start: start, End: end, Notes: viewsOf(phrase)})
		},
	}

	cmd.Flags().BoolVar(&next, "next", false, "show the phrase after the one at position")
	return cmd
}

// NewNearestCommand creates the nearest command.
func NewNearestCommand(rootOpts *RootOptions) *cobra.Command {
	var modeName string

	cmd := &cobra.Command{
		Use:   "nearest <position>",
		Short: "Find the note nearest to a position",
		Long: `Find a note on the track relative to position.

Modes:
  both      nearest note on either side (default)
  before    nearest note starting at or before position
  after     first note starting at or after position
  previous  last note starting strictly before position
  next      first note starting at or after position, across all references`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parseBlick(args[0])
			if err != nil {
				return err
			}
			w, err := openWorkspace(cmd.Context(), rootOpts, cmd)
			if err != nil {
				return err
			}
			defer w.close()
			track, err := w.track()
			if err != nil {
				return err
			}

			var pair timeline.NoteOnsetPair
			var ok bool
			switch modeName {
			case "previous":
				pair, ok = timeline.FindPrevious(pos, track)
			case "next":
				pair, ok = timeline.FindNext(pos, track)
			default:
				mode, err := timeline.ParseMode(modeName)
				if err != nil {
					return w.out.Fail(ExitCommandError, ErrCodeGeneric, "invalid --mode", err)
				}
				pair, ok = timeline.FindNearest(pos, track, mode)
			}
			if !ok {
				return w.out.Fail(ExitFailure, ErrCodeNoNotes, "no note found", nil)
			}
			return w.out.Success(viewOf(pair))
		},
	}

	cmd.Flags().StringVar(&modeName, "mode", "both", "search mode (both|before|after|previous|next)")
	return cmd
}

// LoopRangeResult is the output of the loop-range command.
type LoopRangeResult struct {
	Start        float64    `json:"start"`
	End          float64    `json:"end"`
	StartSeconds float64    `json:"start_seconds"`
	EndSeconds   float64    `json:"end_seconds"`
	Notes        []NoteView `json:"notes"`
}

func (r LoopRangeResult) String() string {
	return fmt.Sprintf("loop %.0f-%.0f (%.3fs-%.3fs) over %d notes",
		r.Start, r.End, r.StartSeconds, r.EndSeconds, len(r.Notes))
}

type loopRangeOptions struct {
	next      bool
	selection bool
	ref       int
	notes     []int
	children  []int
	noExclude bool
}

// NewLoopRangeCommand creates the loop-range command.
func NewLoopRangeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &loopRangeOptions{}

	cmd := &cobra.Command{
		Use:   "loop-range <playhead-seconds>",
		Short: "Compute the playback loop for a phrase or selection",
		Long: `Compute the padded playback loop around the phrase under the playhead,
the phrase after it (--next) or the selected notes (--selection).

Padding, neighbor exclusion and bias come from the configuration file.

Examples:
  phrasekit loop-range 1.5 --file song.yaml
  phrasekit loop-range 0 --selection --ref 0 --notes 2,3 --file song.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playhead, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid playhead %q: must be seconds", args[0]))
			}
			w, err := openWorkspace(cmd.Context(), rootOpts, cmd)
			if err != nil {
				return err
			}
			defer w.close()
			track, err := w.track()
			if err != nil {
				return err
			}

			popts := rootOpts.Config.Playback.Options()
			if opts.noExclude {
				popts.ExcludeSurrounding = false
			}
			axis := w.project.TimeAxis()

			var plan playback.Plan
			var ok bool
			switch {
			case opts.selection:
				current, notes, refs, err := w.selection(track, opts.ref, opts.notes, opts.children)
				if err != nil {
					return err
				}
				plan, ok = playback.PlanSelection(timeline.SelectedPairs(current, notes, refs), track, axis, popts)
			case opts.next:
				plan, ok = playback.PlanNextPhrase(track, axis, playhead, popts)
			default:
				plan, ok = playback.PlanPhraseAt(track, axis, playhead, popts)
			}
			if !ok {
				return w.out.Fail(ExitFailure, ErrCodeNoNotes, "nothing to loop", nil)
			}
			return w.out.Success(LoopRangeResult{
				Start:        plan.Range.Start,
				End:          plan.Range.End,
				StartSeconds: plan.StartSeconds,
				EndSeconds:   plan.EndSeconds,
				Notes:        viewsOf(plan.Notes),
			})
		},
	}

	cmd.Flags().BoolVar(&opts.next, "next", false, "loop the phrase after the playhead")
	cmd.Flags().BoolVar(&opts.selection, "selection", false, "loop the selected notes")
	cmd.Flags().IntVar(&opts.ref, "ref", -1, "reference index of the group holding --notes")
	cmd.Flags().IntSliceVar(&opts.notes, "notes", nil, "selected note indexes within --ref")
	cmd.Flags().IntSliceVar(&opts.children, "children", nil, "selected reference indexes")
	cmd.Flags().BoolVar(&opts.noExclude, "no-exclude", false, "let padding overlap surrounding notes")
	cmd.MarkFlagsMutuallyExclusive("next", "selection")
	return cmd
}

// NewSelectNextCommand creates the select-next command.
func NewSelectNextCommand(rootOpts *RootOptions) *cobra.Command {
	var ref int
	var notes []int

	cmd := &cobra.Command{
		Use:   "select-next <playhead>",
		Short: "Pick the note to select next within a group",
		Long: `Pick the note that follows the selection within the group at --ref.
With nothing selected, the note closest after the playhead is chosen.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playhead, err := parseBlick(args[0])
			if err != nil {
				return err
			}
			if ref < 0 {
				return NewExitError(ExitCommandError, "--ref must not be negative")
			}
			w, err := openWorkspace(cmd.Context(), rootOpts, cmd)
			if err != nil {
				return err
			}
			defer w.close()
			track, err := w.track()
			if err != nil {
				return err
			}
			current, selected, _, err := w.selection(track, ref, notes, nil)
			if err != nil {
				return err
			}

			n, ok := edit.SelectNext(current, selected, playhead)
			if !ok {
				return w.out.Fail(ExitFailure, ErrCodeNoNotes, "no note to select", nil)
			}
			return w.out.Success(viewOf(timeline.NewPair(n, current)))
		},
	}

	cmd.Flags().IntVar(&ref, "ref", 0, "reference index of the current group")
	cmd.Flags().IntSliceVar(&notes, "notes", nil, "selected note indexes")
	return cmd
}
