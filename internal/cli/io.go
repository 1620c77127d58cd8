package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/phrasekit/internal/midiimport"
	"github.com/roach88/phrasekit/internal/score"
	"github.com/roach88/phrasekit/internal/store"
)

// ImportResult is the output of the import command.
type ImportResult struct {
	Source string     `json:"source"`
	Tracks int        `json:"tracks"`
	Notes  int        `json:"notes"`
	Saved  SaveResult `json:"saved"`
}

func (r ImportResult) String() string {
	return fmt.Sprintf("imported %d notes on %d tracks from %s\n%s", r.Notes, r.Tracks, r.Source, r.Saved)
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.mid>",
		Short: "Import a Standard MIDI File as a project",
		Long: `Import a Standard MIDI File. Every MIDI track with notes becomes a
track holding one group; lyric events name the notes they start with.

The result is written to --file, or saved as a new revision of --project
in --db.

Examples:
  phrasekit import song.mid --file song.yaml
  phrasekit import song.mid --db songs.db --project demo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			p, err := midiimport.ReadFile(args[0])
			if errors.Is(err, midiimport.ErrUnsupportedTimeFormat) {
				return out.Fail(ExitCommandError, ErrCodeInvalidDoc, "unsupported MIDI file", err)
			}
			if err != nil {
				return out.Fail(ExitCommandError, ErrCodeNotFound, "failed to read MIDI file", err)
			}

			w, err := newWorkspace(rootOpts, cmd, p)
			if err != nil {
				return err
			}
			defer w.close()

			saved, err := w.save(cmd.Context(), "import", map[string]string{
				"source": filepath.Base(args[0]),
			})
			if err != nil {
				return err
			}

			notes := 0
			for _, g := range p.Groups() {
				notes += g.NumNotes()
			}
			return w.out.Success(ImportResult{
				Source: args[0],
				Tracks: p.NumTracks(),
				Notes:  notes,
				Saved:  saved,
			})
		},
	}
	return cmd
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string
	var seq int64

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the project as a YAML document",
		Long: `Write the project as a YAML document to stdout or --output. With
--format json the document is printed as JSON instead.

Examples:
  phrasekit export --db songs.db --project demo -o demo.yaml
  phrasekit export --db songs.db --project demo --revision 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var p *score.Project
			out := rootOpts.formatter(cmd)

			if seq > 0 {
				if rootOpts.Database == "" || rootOpts.Project == "" {
					return out.Fail(ExitCommandError, ErrCodeGeneric, "--revision requires --db and --project", nil)
				}
				st, err := store.Open(rootOpts.Database)
				if err != nil {
					return out.Fail(ExitCommandError, ErrCodeNotFound, "failed to open database", err)
				}
				defer st.Close()
				rev, err := st.Revision(ctx, rootOpts.Project, seq)
				if errors.Is(err, store.ErrNotFound) {
					return out.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("revision %d not found", seq), nil)
				}
				if err != nil {
					return out.Fail(ExitCommandError, ErrCodeGeneric, "failed to read revision", err)
				}
				if p, err = score.Decode(rev.Document); err != nil {
					return out.Fail(ExitCommandError, ErrCodeInvalidDoc, "invalid project document", err)
				}
			} else {
				w, err := openWorkspace(ctx, rootOpts, cmd)
				if err != nil {
					return err
				}
				defer w.close()
				p = w.project
			}

			if rootOpts.Format == "json" {
				return out.Success(score.Encode(p))
			}
			data, err := score.EncodeYAML(p)
			if err != nil {
				return out.Fail(ExitCommandError, ErrCodeGeneric, "failed to encode project", err)
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return out.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write output", err)
			}
			out.VerboseLog("wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default stdout)")
	cmd.Flags().Int64Var(&seq, "revision", 0, "export this revision instead of the latest")
	return cmd
}
