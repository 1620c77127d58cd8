package host

import "time"

// Blick is a position or length on the musical timeline.
type Blick = int64

// Note is a single note stored in a Group. Onset is local to the group.
type Note interface {
	Onset() Blick
	SetOnset(onset Blick)
	Duration() Blick
	SetDuration(duration Blick)
	Pitch() int
	SetPitch(pitch int)
	Lyrics() string
	SetLyrics(lyrics string)
	Phonemes() string
	SetPhonemes(phonemes string)
	Attributes() NoteAttributes
	SetAttributes(attrs NoteAttributes)

	// IndexInParent is the note's position in its group's ordered notes,
	// or -1 when the note is detached.
	IndexInParent() int
}

// NoteAttributes holds per-note rendering attributes.
type NoteAttributes struct {
	// Dur holds one duration multiplier per phoneme, in phoneme order.
	Dur []float64 `yaml:"dur,omitempty" json:"dur,omitempty"`
}

// Group is an ordered, non-overlapping sequence of notes sorted by onset.
type Group interface {
	ID() string
	Name() string
	NumNotes() int
	Note(index int) Note

	// Parameter returns the automation curve of the given type. Hosts
	// create an empty curve on first access.
	Parameter(kind ParamType) Automation
}

// GroupRef places a Group on a Track.
type GroupRef interface {
	// Onset is the absolute offset added to every note of the target.
	Onset() Blick
	SetOnset(onset Blick)
	PitchOffset() int
	SetPitchOffset(offset int)

	// Duration is the visible span of the reference, which may be shorter
	// than the natural extent of its target.
	Duration() Blick
	Target() Group
	IndexInParent() int
}

// Track is an ordered sequence of group references.
type Track interface {
	Name() string
	NumGroups() int
	GroupReference(index int) GroupRef
}

// Point is one control point of an automation curve.
type Point struct {
	Time  Blick
	Value float64
}

// Automation is a parameter curve local to its owning group.
type Automation interface {
	// Points returns the control points with begin <= Time <= end, ordered
	// by time.
	Points(begin, end Blick) []Point

	// Add inserts a point, replacing any point at the same time.
	Add(t Blick, value float64)

	// Remove deletes the point at exactly t and reports whether one existed.
	Remove(t Blick) bool

	// Value returns the curve value at t.
	Value(t Blick) float64
	Default() float64
}

// TimeAxis converts between blicks and seconds. Fractional blicks are
// accepted so padded ranges survive the round trip.
type TimeAxis interface {
	SecondsFromBlick(b float64) float64
	BlickFromSeconds(seconds float64) float64
}

// Status is the transport state reported by Playback.
type Status string

const (
	StatusStopped Status = "stopped"
	StatusPlaying Status = "playing"
	StatusLooping Status = "looping"
)

// Playback is the host transport. All positions are in seconds.
type Playback interface {
	Playhead() float64
	Seek(seconds float64)
	Pause()
	Loop(start, end float64)
	Status() Status
}

// Clock schedules deferred wake-ups for polling loops.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the wall-clock Clock.
type SystemClock struct{}

// After delegates to time.After.
func (SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
