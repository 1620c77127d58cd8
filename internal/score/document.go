package score

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/phrasekit/internal/host"
)

// Document is the serialized form of a Project.
type Document struct {
	Tempo  []TempoDoc `yaml:"tempo,omitempty" json:"tempo,omitempty"`
	Groups []GroupDoc `yaml:"groups" json:"groups"`
	Tracks []TrackDoc `yaml:"tracks" json:"tracks"`
}

// TempoDoc is a serialized tempo mark.
type TempoDoc struct {
	Position int64   `yaml:"position" json:"position"`
	BPM      float64 `yaml:"bpm" json:"bpm"`
}

// GroupDoc is a serialized group. An empty ID is filled in on decode.
type GroupDoc struct {
	ID         string                `yaml:"id,omitempty" json:"id"`
	Name       string                `yaml:"name,omitempty" json:"name,omitempty"`
	Notes      []NoteDoc             `yaml:"notes" json:"notes"`
	Parameters map[string][]PointDoc `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// NoteDoc is a serialized note.
type NoteDoc struct {
	Onset    int64     `yaml:"onset" json:"onset"`
	Duration int64     `yaml:"duration" json:"duration"`
	Pitch    int       `yaml:"pitch" json:"pitch"`
	Lyrics   string    `yaml:"lyrics,omitempty" json:"lyrics,omitempty"`
	Phonemes string    `yaml:"phonemes,omitempty" json:"phonemes,omitempty"`
	Dur      []float64 `yaml:"dur,omitempty,flow" json:"dur,omitempty"`
}

// PointDoc is a serialized automation control point.
type PointDoc struct {
	T int64   `yaml:"t" json:"t"`
	V float64 `yaml:"v" json:"v"`
}

// TrackDoc is a serialized track.
type TrackDoc struct {
	Name string   `yaml:"name,omitempty" json:"name,omitempty"`
	Refs []RefDoc `yaml:"refs" json:"refs"`
}

// RefDoc is a serialized group reference. A zero duration means the
// group's natural extent.
type RefDoc struct {
	Group       string `yaml:"group" json:"group"`
	Onset       int64  `yaml:"onset" json:"onset"`
	PitchOffset int    `yaml:"pitch_offset,omitempty" json:"pitch_offset,omitempty"`
	Duration    int64  `yaml:"duration,omitempty" json:"duration,omitempty"`
}

// Decode builds a Project from doc, validating note order, durations,
// parameter names and reference targets.
func Decode(doc Document) (*Project, error) {
	marks := make([]TempoMark, 0, len(doc.Tempo))
	for i, t := range doc.Tempo {
		if t.BPM <= 0 {
			return nil, &DocumentError{
				Code:    ErrCodeTempo,
				Path:    fmt.Sprintf("tempo[%d]", i),
				Message: fmt.Sprintf("bpm must be positive, got %v", t.BPM),
			}
		}
		marks = append(marks, TempoMark{Position: t.Position, BPM: t.BPM})
	}
	p := NewProject(NewTimeAxis(marks...))

	for gi, gd := range doc.Groups {
		path := fmt.Sprintf("groups[%d]", gi)
		id := gd.ID
		if id == "" {
			id = p.ids.Generate()
		}
		if p.Group(id) != nil {
			return nil, &DocumentError{Code: ErrCodeDuplicateGroup, Path: path, Message: "duplicate id " + id}
		}
		g, err := decodeGroup(id, gd, path)
		if err != nil {
			return nil, err
		}
		if err := p.AddGroup(g); err != nil {
			return nil, err
		}
	}

	for ti, td := range doc.Tracks {
		t := p.AddTrack(td.Name)
		for ri, rd := range td.Refs {
			if p.Group(rd.Group) == nil {
				return nil, &DocumentError{
					Code:    ErrCodeUnknownGroup,
					Path:    fmt.Sprintf("tracks[%d].refs[%d]", ti, ri),
					Message: "no group with id " + rd.Group,
				}
			}
			t.AddGroupReference(rd.Group, rd.Onset, rd.Duration, rd.PitchOffset)
		}
	}
	return p, nil
}

func decodeGroup(id string, gd GroupDoc, path string) (*Group, error) {
	g := NewGroup(id, gd.Name)

	notes := append([]NoteDoc(nil), gd.Notes...)
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].Onset < notes[j].Onset })
	for ni, nd := range notes {
		if nd.Duration <= 0 {
			return nil, &DocumentError{
				Code:    ErrCodeDuration,
				Path:    fmt.Sprintf("%s.notes[%d]", path, ni),
				Message: fmt.Sprintf("duration must be positive, got %d", nd.Duration),
			}
		}
		if ni > 0 {
			prev := notes[ni-1]
			if nd.Onset < prev.Onset+prev.Duration {
				return nil, &DocumentError{
					Code:    ErrCodeOverlap,
					Path:    fmt.Sprintf("%s.notes[%d]", path, ni),
					Message: fmt.Sprintf("onset %d overlaps note ending at %d", nd.Onset, prev.Onset+prev.Duration),
				}
			}
		}
		n := NewNote(nd.Onset, nd.Duration, nd.Pitch, nd.Lyrics)
		n.phonemes = nd.Phonemes
		n.attrs = host.NoteAttributes{Dur: append([]float64(nil), nd.Dur...)}
		g.AddNote(n)
	}

	for name, points := range gd.Parameters {
		kind := host.ParamType(name)
		if !kind.Valid() {
			return nil, &DocumentError{
				Code:    ErrCodeParameter,
				Path:    fmt.Sprintf("%s.parameters.%s", path, name),
				Message: "unknown parameter type",
			}
		}
		curve := g.Curve(kind)
		for _, pt := range points {
			curve.Add(pt.T, pt.V)
		}
	}
	return g, nil
}

// Encode serializes p. Reference durations are always written explicitly.
func Encode(p *Project) Document {
	var doc Document
	for _, m := range p.axis.Marks() {
		doc.Tempo = append(doc.Tempo, TempoDoc{Position: m.Position, BPM: m.BPM})
	}

	doc.Groups = []GroupDoc{}
	for _, g := range p.Groups() {
		gd := GroupDoc{ID: g.id, Name: g.name, Notes: []NoteDoc{}}
		for _, n := range g.notes {
			gd.Notes = append(gd.Notes, NoteDoc{
				Onset:    n.onset,
				Duration: n.duration,
				Pitch:    n.pitch,
				Lyrics:   n.lyrics,
				Phonemes: n.phonemes,
				Dur:      append([]float64(nil), n.attrs.Dur...),
			})
		}
		for kind, curve := range g.Curves() {
			if gd.Parameters == nil {
				gd.Parameters = make(map[string][]PointDoc)
			}
			pts := make([]PointDoc, 0, curve.Len())
			for _, pt := range curve.points {
				pts = append(pts, PointDoc{T: pt.Time, V: pt.Value})
			}
			gd.Parameters[string(kind)] = pts
		}
		doc.Groups = append(doc.Groups, gd)
	}

	doc.Tracks = []TrackDoc{}
	for _, t := range p.tracks {
		td := TrackDoc{Name: t.name, Refs: []RefDoc{}}
		for _, r := range t.refs {
			td.Refs = append(td.Refs, RefDoc{
				Group:       r.groupID,
				Onset:       r.onset,
				PitchOffset: r.pitchOffset,
				Duration:    r.duration,
			})
		}
		doc.Tracks = append(doc.Tracks, td)
	}
	return doc
}

// DecodeYAML parses and decodes a YAML project document.
func DecodeYAML(data []byte) (*Project, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	return Decode(doc)
}

// EncodeYAML serializes p as YAML.
func EncodeYAML(p *Project) ([]byte, error) {
	data, err := yaml.Marshal(Encode(p))
	if err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	return data, nil
}

// LoadFile reads a YAML project document from path.
func LoadFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	return DecodeYAML(data)
}

// SaveFile writes p to path as YAML.
func SaveFile(path string, p *Project) error {
	data, err := EncodeYAML(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}
