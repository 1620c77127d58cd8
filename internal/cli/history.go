package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/phrasekit/internal/store"
)

// HistoryResult is the output of the history command.
type HistoryResult struct {
	Project   string           `json:"project,omitempty"`
	Projects  []string         `json:"projects,omitempty"`
	Revisions []store.Revision `json:"revisions,omitempty"`
	Edits     []store.Edit     `json:"edits,omitempty"`
}

func (r HistoryResult) String() string {
	var b strings.Builder
	if r.Project == "" {
		if len(r.Projects) == 0 {
			return "no projects"
		}
		return strings.Join(r.Projects, "\n")
	}

	fmt.Fprintf(&b, "%s: %d revisions", r.Project, len(r.Revisions))
	for _, rev := range r.Revisions {
		fmt.Fprintf(&b, "\n  #%d %s", rev.Seq, shortHash(rev.Hash))
	}
	for _, e := range r.Edits {
		fmt.Fprintf(&b, "\n  -> #%d %s%s", e.Seq, e.Action, formatArgs(e.Args))
	}
	return b.String()
}

func formatArgs(args map[string]string) string {
	if len(args) == 0 {
		return ""
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + args[k]
	}
	return " " + strings.Join(parts, " ")
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored projects, revisions and edits",
		Long: `Without --project, list the projects in --db. With --project, list its
revisions and the edits that produced them.

Examples:
  phrasekit history --db songs.db
  phrasekit history --db songs.db --project demo --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rootOpts.formatter(cmd)
			if rootOpts.Database == "" {
				return out.Fail(ExitCommandError, ErrCodeGeneric, "--db is required", nil)
			}

			st, err := store.Open(rootOpts.Database)
			if err != nil {
				return out.Fail(ExitCommandError, ErrCodeNotFound, "failed to open database", err)
			}
			defer st.Close()

			if rootOpts.Project == "" {
				projects, err := st.Projects(ctx)
				if err != nil {
					return out.Fail(ExitCommandError, ErrCodeGeneric, "failed to list projects", err)
				}
				return out.Success(HistoryResult{Projects: projects})
			}

			revs, err := st.Revisions(ctx, rootOpts.Project)
			if err != nil {
				return out.Fail(ExitCommandError, ErrCodeGeneric, "failed to list revisions", err)
			}
			if len(revs) == 0 {
				return out.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("project %q not found", rootOpts.Project), nil)
			}
			edits, err := st.Edits(ctx, rootOpts.Project)
			if err != nil {
				return out.Fail(ExitCommandError, ErrCodeGeneric, "failed to list edits", err)
			}
			return out.Success(HistoryResult{Project: rootOpts.Project, Revisions: revs, Edits: edits})
		},
	}
	return cmd
}
