// Package midiimport converts Standard MIDI Files into projects.
//
// Each MIDI track with notes becomes a track holding one group placed at
// onset 0. Notes are made monophonic: a note that starts while the previous
// one still sounds cuts the previous one short. Lyric meta events attach to
// the note that starts on the same tick.
package midiimport

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/roach88/phrasekit/internal/host"
	"github.com/roach88/phrasekit/internal/score"
)

// DefaultLyric is used for notes without a lyric event.
const DefaultLyric = "la"

// ErrUnsupportedTimeFormat is returned for SMPTE-timed files.
var ErrUnsupportedTimeFormat = errors.New("only metric time format is supported")

// ReadFile imports the SMF at path.
func ReadFile(path string) (*score.Project, error) {
	s, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read midi %s: %w", path, err)
	}
	return Convert(s)
}

// Read imports an SMF from r.
func Read(r io.Reader) (*score.Project, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("read midi: %w", err)
	}
	return Convert(s)
}

type rawNote struct {
	start, end uint64
	key        uint8
	lyric      string
}

// Convert builds a project from a parsed SMF.
func Convert(s *smf.SMF) (*score.Project, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, ErrUnsupportedTimeFormat
	}
	perQuarter := uint64(mt.Ticks4th())
	if perQuarter == 0 {
		return nil, fmt.Errorf("invalid resolution %d", perQuarter)
	}
	toBlick := func(tick uint64) host.Blick {
		quarter := uint64(score.Quarter)
		return host.Blick(tick/perQuarter*quarter + tick%perQuarter*quarter/perQuarter)
	}

	var marks []score.TempoMark
	p := score.NewProject(nil)
	for i, tr := range s.Tracks {
		notes, tempos := scanTrack(tr)
		for _, t := range tempos {
			marks = append(marks, score.TempoMark{Position: toBlick(t.tick), BPM: t.bpm})
		}
		if len(notes) == 0 {
			continue
		}

		g := p.NewGroup(fmt.Sprintf("track %d", i+1))
		for _, n := range notes {
			g.AddNote(score.NewNote(toBlick(n.start), toBlick(n.end)-toBlick(n.start), int(n.key), n.lyric))
		}
		track := p.AddTrack(fmt.Sprintf("Track %d", i+1))
		track.AddGroupReference(g.ID(), 0, 0, 0)
		slog.Debug("midi track imported", "track", i+1, "notes", len(notes))
	}
	p.SetTimeAxis(score.NewTimeAxis(marks...))
	return p, nil
}

type tempoChange struct {
	tick uint64
	bpm  float64
}

// scanTrack pairs note starts with note ends and collects lyrics and tempo
// changes, all at absolute ticks.
func scanTrack(tr smf.Track) ([]rawNote, []tempoChange) {
	type voice struct{ ch, key uint8 }
	open := map[voice]uint64{}
	lyrics := map[uint64]string{}
	var notes []rawNote
	var tempos []tempoChange

	var tick uint64
	for _, ev := range tr {
		tick += uint64(ev.Delta)

		var bpm float64
		var text string
		if ev.Message.GetMetaTempo(&bpm) {
			tempos = append(tempos, tempoChange{tick: tick, bpm: bpm})
			continue
		}
		if ev.Message.GetMetaLyric(&text) {
			lyrics[tick] = text
			continue
		}

		var ch, key, vel uint8
		msg := midi.Message(ev.Message)
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			v := voice{ch, key}
			if start, ok := open[v]; ok {
				notes = append(notes, rawNote{start: start, end: tick, key: key})
			}
			open[v] = tick
		case msg.GetNoteEnd(&ch, &key):
			v := voice{ch, key}
			if start, ok := open[v]; ok {
				notes = append(notes, rawNote{start: start, end: tick, key: key})
				delete(open, v)
			}
		}
	}
	for v, start := range open {
		notes = append(notes, rawNote{start: start, end: tick, key: v.key})
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].start != notes[j].start {
			return notes[i].start < notes[j].start
		}
		return notes[i].key > notes[j].key
	})

	out := notes[:0]
	for _, n := range notes {
		if len(out) > 0 {
			prev := &out[len(out)-1]
			if n.start == prev.start {
				// Chord: keep the highest key, which sorts first.
				continue
			}
			if n.start < prev.end {
				prev.end = n.start
			}
		}
		if n.end <= n.start {
			continue
		}
		n.lyric = DefaultLyric
		if text, ok := lyrics[n.start]; ok {
			n.lyric = text
		}
		out = append(out, n)
	}
	return out, tempos
}
