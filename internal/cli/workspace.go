package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/phrasekit/internal/host"
	"github.com/roach88/phrasekit/internal/score"
	"github.com/roach88/phrasekit/internal/store"
	"github.com/roach88/phrasekit/internal/timeline"
)

// workspace is a loaded project and the place it is saved back to.
type workspace struct {
	opts    *RootOptions
	out     *OutputFormatter
	project *score.Project
	store   *store.Store
}

// SaveResult describes where a mutating command wrote the project.
type SaveResult struct {
	File    string `json:"file,omitempty"`
	Project string `json:"project,omitempty"`
	EditID  string `json:"edit_id,omitempty"`
	Seq     int64  `json:"seq,omitempty"`
	Hash    string `json:"hash,omitempty"`
}

func (r SaveResult) String() string {
	if r.File != "" {
		return "saved " + r.File
	}
	return fmt.Sprintf("saved %s revision %d (%s)", r.Project, r.Seq, shortHash(r.Hash))
}

// openWorkspace loads the project named by --file or by --db and --project.
func openWorkspace(ctx context.Context, opts *RootOptions, cmd *cobra.Command) (*workspace, error) {
	w := &workspace{opts: opts, out: opts.formatter(cmd)}
	if err := w.checkTarget(); err != nil {
		return nil, err
	}

	if opts.File != "" {
		p, err := score.LoadFile(opts.File)
		if err != nil {
			return nil, w.loadError(err)
		}
		w.project = p
		return w, nil
	}

	if err := w.openStore(); err != nil {
		return nil, err
	}
	rev, err := w.store.LatestRevision(ctx, opts.Project)
	if errors.Is(err, store.ErrNotFound) {
		w.close()
		return nil, w.out.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("project %q not found", opts.Project), nil)
	}
	if err != nil {
		w.close()
		return nil, w.out.Fail(ExitCommandError, ErrCodeGeneric, "failed to read project", err)
	}
	p, err := score.Decode(rev.Document)
	if err != nil {
		w.close()
		return nil, w.loadError(err)
	}
	slog.Debug("project loaded", "project", opts.Project, "seq", rev.Seq)
	w.project = p
	return w, nil
}

// newWorkspace wraps a project that does not come from the save target yet.
func newWorkspace(opts *RootOptions, cmd *cobra.Command, p *score.Project) (*workspace, error) {
	w := &workspace{opts: opts, out: opts.formatter(cmd), project: p}
	if err := w.checkTarget(); err != nil {
		return nil, err
	}
	if opts.File == "" {
		if err := w.openStore(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *workspace) checkTarget() error {
	switch {
	case w.opts.File != "" && w.opts.Database != "":
		return w.out.Fail(ExitCommandError, ErrCodeGeneric, "--file and --db are mutually exclusive", nil)
	case w.opts.File == "" && w.opts.Database == "":
		return w.out.Fail(ExitCommandError, ErrCodeGeneric, "either --file or --db is required", nil)
	case w.opts.Database != "" && w.opts.Project == "":
		return w.out.Fail(ExitCommandError, ErrCodeGeneric, "--db requires --project", nil)
	}
	return nil
}

func (w *workspace) openStore() error {
	st, err := store.Open(w.opts.Database)
	if err != nil {
		return w.out.Fail(ExitCommandError, ErrCodeNotFound, "failed to open database", err)
	}
	w.store = st
	return nil
}

func (w *workspace) loadError(err error) error {
	var de *score.DocumentError
	if errors.As(err, &de) {
		return w.out.Fail(ExitCommandError, ErrCodeInvalidDoc, "invalid project document", err)
	}
	return w.out.Fail(ExitCommandError, ErrCodeNotFound, "failed to load project", err)
}

func (w *workspace) close() {
	if w.store != nil {
		_ = w.store.Close()
		w.store = nil
	}
}

// track returns the track selected by --track.
func (w *workspace) track() (*score.Track, error) {
	t := w.project.Track(w.opts.Track)
	if t == nil {
		return nil, w.out.Fail(ExitCommandError, ErrCodeNoGroup,
			fmt.Sprintf("track %d out of range (project has %d)", w.opts.Track, w.project.NumTracks()), nil)
	}
	return t, nil
}

// ref returns reference index of track.
func (w *workspace) ref(t *score.Track, index int) (*score.GroupRef, error) {
	r := t.Ref(index)
	if r == nil {
		return nil, w.out.Fail(ExitCommandError, ErrCodeNoGroup,
			fmt.Sprintf("reference %d out of range (track has %d)", index, t.NumGroups()), nil)
	}
	return r, nil
}

// selection resolves a current reference with selected note indexes plus
// selected child references. A negative refIndex means no current group.
func (w *workspace) selection(t *score.Track, refIndex int, noteIndexes, children []int) (host.GroupRef, []host.Note, []host.GroupRef, error) {
	var current host.GroupRef
	var notes []host.Note
	if refIndex >= 0 {
		r, err := w.ref(t, refIndex)
		if err != nil {
			return nil, nil, nil, err
		}
		current = r
		g := r.Group()
		for _, i := range noteIndexes {
			if i < 0 || i >= g.NumNotes() {
				return nil, nil, nil, w.out.Fail(ExitCommandError, ErrCodeNoGroup,
					fmt.Sprintf("note %d out of range (group %s has %d)", i, g.ID(), g.NumNotes()), nil)
			}
			notes = append(notes, g.Note(i))
		}
	} else if len(noteIndexes) > 0 {
		return nil, nil, nil, w.out.Fail(ExitCommandError, ErrCodeGeneric, "--notes requires --ref", nil)
	}

	refs := make([]host.GroupRef, 0, len(children))
	for _, i := range children {
		r, err := w.ref(t, i)
		if err != nil {
			return nil, nil, nil, err
		}
		refs = append(refs, r)
	}
	return current, notes, refs, nil
}

// save writes the project back and, for databases, records the edit.
func (w *workspace) save(ctx context.Context, action string, args map[string]string) (SaveResult, error) {
	if w.opts.File != "" {
		if err := score.SaveFile(w.opts.File, w.project); err != nil {
			return SaveResult{}, w.out.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to save project", err)
		}
		return SaveResult{File: w.opts.File}, nil
	}

	e, err := w.store.Commit(ctx, w.opts.Project, action, args, score.Encode(w.project))
	if err != nil {
		return SaveResult{}, w.out.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to save project", err)
	}
	slog.Debug("edit recorded", "project", e.Project, "action", action, "seq", e.Seq)
	return SaveResult{Project: e.Project, EditID: e.ID, Seq: e.Seq, Hash: e.AfterHash}, nil
}

func parseBlick(s string) (host.Blick, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid position %q: must be an integer blick", s))
	}
	return host.Blick(v), nil
}

// NoteView is a note as the CLI reports it.
type NoteView struct {
	Group  string `json:"group"`
	Ref    int    `json:"ref"`
	Index  int    `json:"index"`
	Onset  int64  `json:"onset"`
	End    int64  `json:"end"`
	Pitch  int    `json:"pitch"`
	Lyrics string `json:"lyrics,omitempty"`
}

func (v NoteView) String() string {
	return fmt.Sprintf("%s[%d] %d-%d pitch %d %q", v.Group, v.Index, v.Onset, v.End, v.Pitch, v.Lyrics)
}

func viewOf(p timeline.NoteOnsetPair) NoteView {
	v := NoteView{
		Ref:    p.Ref.IndexInParent(),
		Index:  p.Note.IndexInParent(),
		Onset:  int64(p.Onset),
		End:    int64(p.End()),
		Pitch:  p.Note.Pitch() + p.Ref.PitchOffset(),
		Lyrics: p.Note.Lyrics(),
	}
	if g := p.Ref.Target(); g != nil {
		v.Group = g.ID()
	}
	return v
}

func viewsOf(pairs []timeline.NoteOnsetPair) []NoteView {
	out := make([]NoteView, len(pairs))
	for i, p := range pairs {
		out[i] = viewOf(p)
	}
	return out
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
