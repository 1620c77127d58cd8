package score

import (
	"github.com/roach88/phrasekit/internal/host"
)

// Note is a note stored in a Group.
type Note struct {
	group    *Group
	index    int
	onset    host.Blick
	duration host.Blick
	pitch    int
	lyrics   string
	phonemes string
	attrs    host.NoteAttributes
}

var _ host.Note = (*Note)(nil)

// NewNote creates a detached note.
func NewNote(onset, duration host.Blick, pitch int, lyrics string) *Note {
	return &Note{
		index:    -1,
		onset:    onset,
		duration: duration,
		pitch:    pitch,
		lyrics:   lyrics,
	}
}

func (n *Note) Onset() host.Blick { return n.onset }

// SetOnset moves the note and keeps its group ordered by onset.
func (n *Note) SetOnset(onset host.Blick) {
	n.onset = onset
	if n.group != nil {
		n.group.reorder()
	}
}

func (n *Note) Duration() host.Blick            { return n.duration }
func (n *Note) SetDuration(duration host.Blick) { n.duration = duration }
func (n *Note) Pitch() int                      { return n.pitch }
func (n *Note) SetPitch(pitch int)              { n.pitch = pitch }
func (n *Note) Lyrics() string                  { return n.lyrics }
func (n *Note) SetLyrics(lyrics string)         { n.lyrics = lyrics }
func (n *Note) Phonemes() string                { return n.phonemes }
func (n *Note) SetPhonemes(phonemes string)     { n.phonemes = phonemes }

func (n *Note) Attributes() host.NoteAttributes {
	return host.NoteAttributes{Dur: append([]float64(nil), n.attrs.Dur...)}
}

func (n *Note) SetAttributes(attrs host.NoteAttributes) {
	n.attrs = host.NoteAttributes{Dur: append([]float64(nil), attrs.Dur...)}
}

func (n *Note) IndexInParent() int { return n.index }

// End returns onset + duration in group-local blicks.
func (n *Note) End() host.Blick { return n.onset + n.duration }

// Group returns the owning group, or nil when detached.
func (n *Note) Group() *Group { return n.group }
