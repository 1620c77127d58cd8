package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/phrasekit/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string
	Project    string
	File       string
	Track      int

	// Config is loaded from ConfigPath before any command runs.
	Config config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the phrasekit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Config: config.Default()}

	cmd := &cobra.Command{
		Use:   "phrasekit",
		Short: "phrasekit - phrase-aware timeline tools for vocal synth projects",
		Long: `Query and edit piano-roll projects by phrase.

A project is read from a YAML document (--file) or from the latest revision
stored in a SQLite database (--db with --project). Edits write back to the
same place; database edits are recorded in an undo log.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return opts.formatter(cmd).Fail(ExitCommandError, ErrCodeConfigFailed, "invalid configuration", err)
			}
			opts.Config = cfg
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.ConfigPath, "config", "", "path to a CUE configuration file")
	flags.StringVar(&opts.Database, "db", "", "path to the SQLite project database")
	flags.StringVar(&opts.Project, "project", "", "project name inside --db")
	flags.StringVarP(&opts.File, "file", "f", "", "path to a YAML project document")
	flags.IntVar(&opts.Track, "track", 0, "track index")

	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewPhraseCommand(opts))
	cmd.AddCommand(NewNearestCommand(opts))
	cmd.AddCommand(NewLoopRangeCommand(opts))
	cmd.AddCommand(NewPackCommand(opts))
	cmd.AddCommand(NewFitEdgeCommand(opts))
	cmd.AddCommand(NewSelectNextCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
