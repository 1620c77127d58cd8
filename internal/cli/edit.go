package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/phrasekit/internal/automation"
	"github.com/roach88/phrasekit/internal/edit"
)

// PackResult is the output of the pack command.
type PackResult struct {
	Reports []automation.Report `json:"reports"`
	Saved   *SaveResult         `json:"saved,omitempty"`
}

func (r PackResult) String() string {
	var b strings.Builder
	for i, rep := range r.Reports {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: window %d-%d offset %d, packed %d parameters",
			rep.Child, rep.Window.Start, rep.Window.End, rep.Window.Offset, len(rep.Packed))
	}
	if r.Saved != nil {
		fmt.Fprintf(&b, "\n%s", r.Saved)
	}
	return b.String()
}

// NewPackCommand creates the pack command.
func NewPackCommand(rootOpts *RootOptions) *cobra.Command {
	var parent int
	var children []int

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Copy parent automation into child groups",
		Long: `Copy the parameter curves of the parent reference that lie under each
child reference into the child group, widened toward the neighboring notes.

Examples:
  phrasekit pack --parent 0 --children 1,2 --file song.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd.Context(), rootOpts, cmd)
			if err != nil {
				return err
			}
			defer w.close()
			track, err := w.track()
			if err != nil {
				return err
			}
			parentRef, err := w.ref(track, parent)
			if err != nil {
				return err
			}
			_, _, refs, err := w.selection(track, -1, nil, children)
			if err != nil {
				return err
			}

			reports, err := automation.Pack(track, parentRef, refs, rootOpts.Config.Pack.Options())
			if errors.Is(err, automation.ErrNoGroupSelected) {
				return w.out.Fail(ExitCommandError, ErrCodeNoGroup, "no child reference given", err)
			}
			if err != nil {
				return w.out.Fail(ExitFailure, ErrCodeGeneric, "pack failed", err)
			}

			result := PackResult{Reports: reports}
			if packedAny(reports) {
				saved, err := w.save(cmd.Context(), "pack", map[string]string{
					"parent":   strconv.Itoa(parent),
					"children": joinInts(children),
				})
				if err != nil {
					return err
				}
				result.Saved = &saved
			}
			return w.out.Success(result)
		},
	}

	cmd.Flags().IntVar(&parent, "parent", 0, "reference index of the parent group")
	cmd.Flags().IntSliceVar(&children, "children", nil, "reference indexes of the child groups")
	_ = cmd.MarkFlagRequired("children")
	return cmd
}

func packedAny(reports []automation.Report) bool {
	for _, r := range reports {
		if len(r.Packed) > 0 {
			return true
		}
	}
	return false
}

// FitEdgeResult is the output of the fit-edge command.
type FitEdgeResult struct {
	Edge    int64       `json:"edge"`
	Snapped bool        `json:"snapped"`
	Before  *NoteView   `json:"before,omitempty"`
	After   *NoteView   `json:"after,omitempty"`
	Saved   *SaveResult `json:"saved,omitempty"`
}

func (r FitEdgeResult) String() string {
	if r.Before == nil && r.After == nil {
		return fmt.Sprintf("edge %d leaves the notes; nothing moved", r.Edge)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "edge moved to %d", r.Edge)
	if r.Snapped {
		b.WriteString(" (snapped)")
	}
	if r.Before != nil {
		fmt.Fprintf(&b, "\n  before: %s", r.Before)
	}
	if r.After != nil {
		fmt.Fprintf(&b, "\n  after:  %s", r.After)
	}
	if r.Saved != nil {
		fmt.Fprintf(&b, "\n%s", r.Saved)
	}
	return b.String()
}

// NewFitEdgeCommand creates the fit-edge command.
func NewFitEdgeCommand(rootOpts *RootOptions) *cobra.Command {
	var ref int
	var notes []int

	cmd := &cobra.Command{
		Use:   "fit-edge <playhead>",
		Short: "Move the nearest note edge to the playhead",
		Long: `Move the onset or end of the note nearest to the playhead onto the
playhead, dragging an abutting neighbor along. When the playhead already
sits on the edge, the edge snaps to the grid from the configuration.

Examples:
  phrasekit fit-edge 1058400000 --file song.yaml
  phrasekit fit-edge 1058400000 --ref 0 --notes 3,4 --db songs.db --project demo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playhead, err := parseBlick(args[0])
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
			current, selected, _, err := w.selection(track, ref, notes, nil)
			if err != nil {
				return err
			}

			fit, ok := edit.FitEdge(track, playhead, rootOpts.Config.Edit.Grid(), current, selected)
			if !ok {
				return w.out.Fail(ExitFailure, ErrCodeNoNotes, "no note near the playhead", nil)
			}

			result := FitEdgeResult{Edge: fit.Edge, Snapped: fit.Snapped}
			if fit.Before != nil {
				v := viewOf(*fit.Before)
				result.Before = &v
			}
			if fit.After != nil {
				v := viewOf(*fit.After)
				result.After = &v
			}
			if fit.Moved() {
				saved, err := w.save(cmd.Context(), "fit-edge", map[string]string{
					"playhead": args[0],
					"edge":     strconv.FormatInt(fit.Edge, 10),
				})
				if err != nil {
					return err
				}
				result.Saved = &saved
			}
			return w.out.Success(result)
		},
	}

	cmd.Flags().IntVar(&ref, "ref", -1, "reference index of the current group")
	cmd.Flags().IntSliceVar(&notes, "notes", nil, "selected note indexes within --ref")
	return cmd
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
