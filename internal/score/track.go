package score

import (
	"github.com/roach88/phrasekit/internal/host"
)

// Track is an ordered list of group references.
type Track struct {
	project *Project
	name    string
	refs    []*GroupRef
}

var _ host.Track = (*Track)(nil)

func (t *Track) Name() string  { return t.name }
func (t *Track) NumGroups() int { return len(t.refs) }

// GroupReference returns the reference at index, or nil when out of range.
func (t *Track) GroupReference(index int) host.GroupRef {
	if index < 0 || index >= len(t.refs) {
		return nil
	}
	return t.refs[index]
}

// Ref is GroupReference with the concrete return type.
func (t *Track) Ref(index int) *GroupRef {
	if index < 0 || index >= len(t.refs) {
		return nil
	}
	return t.refs[index]
}

// Refs returns the references in track order.
func (t *Track) Refs() []*GroupRef {
	return append([]*GroupRef(nil), t.refs...)
}

// AddGroupReference places the group with groupID on the track. A
// non-positive duration defaults to the group's natural extent.
func (t *Track) AddGroupReference(groupID string, onset, duration host.Blick, pitchOffset int) *GroupRef {
	if duration <= 0 {
		if g := t.project.Group(groupID); g != nil {
			duration = g.End()
		}
	}
	ref := &GroupRef{
		project:     t.project,
		track:       t,
		groupID:     groupID,
		onset:       onset,
		duration:    duration,
		pitchOffset: pitchOffset,
		index:       len(t.refs),
	}
	t.refs = append(t.refs, ref)
	return ref
}

// RemoveGroupReference detaches the reference at index.
func (t *Track) RemoveGroupReference(index int) {
	if index < 0 || index >= len(t.refs) {
		return
	}
	removed := t.refs[index]
	t.refs = append(t.refs[:index], t.refs[index+1:]...)
	removed.track = nil
	removed.index = -1
	for i, r := range t.refs {
		r.index = i
	}
}

// GroupRef is a placement of a group on a track. It holds the group id, not
// the group: the target is looked up in the project registry on demand.
type GroupRef struct {
	project     *Project
	track       *Track
	groupID     string
	onset       host.Blick
	duration    host.Blick
	pitchOffset int
	index       int
}

var _ host.GroupRef = (*GroupRef)(nil)

func (r *GroupRef) Onset() host.Blick         { return r.onset }
func (r *GroupRef) SetOnset(onset host.Blick) { r.onset = onset }
func (r *GroupRef) PitchOffset() int          { return r.pitchOffset }
func (r *GroupRef) SetPitchOffset(offset int) { r.pitchOffset = offset }
func (r *GroupRef) Duration() host.Blick      { return r.duration }
func (r *GroupRef) SetDuration(d host.Blick)  { r.duration = d }
func (r *GroupRef) GroupID() string           { return r.groupID }
func (r *GroupRef) IndexInParent() int        { return r.index }

// Target resolves the referenced group, or returns nil when the id is not
// registered.
func (r *GroupRef) Target() host.Group {
	if g := r.Group(); g != nil {
		return g
	}
	return nil
}

// Group is Target with the concrete return type.
func (r *GroupRef) Group() *Group {
	if r.project == nil {
		return nil
	}
	return r.project.Group(r.groupID)
}
