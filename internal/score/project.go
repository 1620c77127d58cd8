package score

import (
	"fmt"
)

// Project is the root of an in-memory document.
type Project struct {
	axis       *TimeAxis
	groups     map[string]*Group
	groupOrder []string
	tracks     []*Track
	ids        IDGenerator
}

// NewProject creates an empty project. A nil axis means a constant
// DefaultBPM tempo.
func NewProject(axis *TimeAxis) *Project {
	if axis == nil {
		axis = NewTimeAxis()
	}
	return &Project{
		axis:   axis,
		groups: make(map[string]*Group),
		ids:    UUIDGenerator{},
	}
}

// SetIDGenerator replaces the generator used by NewGroup.
func (p *Project) SetIDGenerator(g IDGenerator) {
	p.ids = g
}

func (p *Project) TimeAxis() *TimeAxis { return p.axis }

// SetTimeAxis replaces the tempo map.
func (p *Project) SetTimeAxis(axis *TimeAxis) {
	p.axis = axis
}

// NewGroup registers an empty group under a generated id.
func (p *Project) NewGroup(name string) *Group {
	g := NewGroup(p.ids.Generate(), name)
	p.groups[g.id] = g
	p.groupOrder = append(p.groupOrder, g.id)
	return g
}

// AddGroup registers g. Ids must be unique within the project.
func (p *Project) AddGroup(g *Group) error {
	if g.id == "" {
		return fmt.Errorf("add group %q: empty id", g.name)
	}
	if _, exists := p.groups[g.id]; exists {
		return fmt.Errorf("add group %q: duplicate id %s", g.name, g.id)
	}
	p.groups[g.id] = g
	p.groupOrder = append(p.groupOrder, g.id)
	return nil
}

// Group looks a group up by id.
func (p *Project) Group(id string) *Group {
	return p.groups[id]
}

// Groups returns the registered groups in registration order.
func (p *Project) Groups() []*Group {
	out := make([]*Group, 0, len(p.groupOrder))
	for _, id := range p.groupOrder {
		out = append(out, p.groups[id])
	}
	return out
}

// AddTrack appends an empty track.
func (p *Project) AddTrack(name string) *Track {
	t := &Track{project: p, name: name}
	p.tracks = append(p.tracks, t)
	return t
}

func (p *Project) NumTracks() int { return len(p.tracks) }

// Track returns the track at index, or nil when out of range.
func (p *Project) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return p.tracks[index]
}

// Tracks returns the tracks in order.
func (p *Project) Tracks() []*Track {
	return append([]*Track(nil), p.tracks...)
}
