package score

import (
	"sort"

	"github.com/roach88/phrasekit/internal/host"
)

// Group is a reusable block of notes kept sorted by onset.
type Group struct {
	id     string
	name   string
	notes  []*Note
	params map[host.ParamType]*Parameter
}

var _ host.Group = (*Group)(nil)

// NewGroup creates an empty group. Use Project.NewGroup to get a generated id.
func NewGroup(id, name string) *Group {
	return &Group{
		id:     id,
		name:   name,
		params: make(map[host.ParamType]*Parameter),
	}
}

func (g *Group) ID() string    { return g.id }
func (g *Group) Name() string  { return g.name }
func (g *Group) NumNotes() int { return len(g.notes) }

// Note returns the note at index, or nil when out of range.
func (g *Group) Note(index int) host.Note {
	if index < 0 || index >= len(g.notes) {
		return nil
	}
	return g.notes[index]
}

// Notes returns the group's notes in onset order.
func (g *Group) Notes() []*Note {
	return append([]*Note(nil), g.notes...)
}

// AddNote attaches n to the group, detaching it from any previous group.
func (g *Group) AddNote(n *Note) {
	if n.group == g {
		return
	}
	if n.group != nil {
		n.group.RemoveNote(n.index)
	}
	n.group = g
	g.notes = append(g.notes, n)
	g.reorder()
}

// RemoveNote detaches the note at index. Out of range indices are ignored.
func (g *Group) RemoveNote(index int) {
	if index < 0 || index >= len(g.notes) {
		return
	}
	n := g.notes[index]
	g.notes = append(g.notes[:index], g.notes[index+1:]...)
	n.group = nil
	n.index = -1
	g.reorder()
}

// End returns the natural extent of the group: the end of its last note.
func (g *Group) End() host.Blick {
	var end host.Blick
	for _, n := range g.notes {
		if e := n.End(); e > end {
			end = e
		}
	}
	return end
}

// Parameter returns the curve for kind, creating an empty one on first use.
func (g *Group) Parameter(kind host.ParamType) host.Automation {
	return g.Curve(kind)
}

// Curve is Parameter with the concrete return type.
func (g *Group) Curve(kind host.ParamType) *Parameter {
	p, ok := g.params[kind]
	if !ok {
		p = NewParameter(kind)
		g.params[kind] = p
	}
	return p
}

// Curves returns the non-empty curves keyed by parameter type.
func (g *Group) Curves() map[host.ParamType]*Parameter {
	out := make(map[host.ParamType]*Parameter, len(g.params))
	for k, p := range g.params {
		if p.Len() > 0 {
			out[k] = p
		}
	}
	return out
}

func (g *Group) reorder() {
	sort.SliceStable(g.notes, func(i, j int) bool {
		return g.notes[i].onset < g.notes[j].onset
	})
	for i, n := range g.notes {
		n.index = i
	}
}
