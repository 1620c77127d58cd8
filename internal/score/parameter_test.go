package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/phrasekit/internal/host"
)

func TestParameter_ValueInterpolates(t *testing.T) {
	p := NewParameter(host.ParamLoudness)
	assert.Equal(t, 0.0, p.Value(10), "empty curve reports its default")

	p.Add(100, 4)
	p.Add(0, 2)

	assert.Equal(t, 2.0, p.Value(-50))
	assert.Equal(t, 3.0, p.Value(50))
	assert.Equal(t, 4.0, p.Value(100))
	assert.Equal(t, 4.0, p.Value(500))
}

func TestParameter_AddReplacesAndRemove(t *testing.T) {
	p := NewParameter(host.ParamVoicing)
	assert.Equal(t, 1.0, p.Default())

	p.Add(10, 0.5)
	p.Add(10, 0.25)
	assert.Equal(t, []host.Point{{Time: 10, Value: 0.25}}, p.All())

	assert.True(t, p.Remove(10))
	assert.False(t, p.Remove(10))
	assert.Equal(t, 0, p.Len())
}

func TestParameter_PointsInclusiveRange(t *testing.T) {
	p := NewParameter(host.ParamTension)
	for _, tm := range []host.Blick{0, 10, 20, 30} {
		p.Add(tm, float64(tm))
	}

	got := p.Points(10, 20)
	assert.Equal(t, []host.Point{{Time: 10, Value: 10}, {Time: 20, Value: 20}}, got)
	assert.Empty(t, p.Points(31, 40))
}

func TestGroup_NotesStaySorted(t *testing.T) {
	g := NewGroup("g", "")
	late := NewNote(20, 5, 60, "b")
	early := NewNote(0, 5, 60, "a")
	g.AddNote(late)
	g.AddNote(early)

	assert.Equal(t, 0, early.IndexInParent())
	assert.Equal(t, 1, late.IndexInParent())

	early.SetOnset(30)
	assert.Equal(t, 0, late.IndexInParent())
	assert.Equal(t, host.Blick(35), g.End())

	g.RemoveNote(0)
	assert.Nil(t, late.Group())
	assert.Equal(t, -1, late.IndexInParent())
	assert.Equal(t, 0, early.IndexInParent())
}
