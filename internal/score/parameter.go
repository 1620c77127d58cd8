package score

import (
	"sort"

	"github.com/roach88/phrasekit/internal/host"
)

// Parameter is an automation curve: control points ordered by time with
// linear interpolation between them. Before the first point and after the
// last one the curve holds the nearest point's value; an empty curve reports
// its default everywhere.
type Parameter struct {
	kind   host.ParamType
	def    float64
	points []host.Point
}

var _ host.Automation = (*Parameter)(nil)

// NewParameter creates an empty curve with the type's default value.
func NewParameter(kind host.ParamType) *Parameter {
	return &Parameter{kind: kind, def: kind.DefaultValue()}
}

func (p *Parameter) Kind() host.ParamType { return p.kind }
func (p *Parameter) Default() float64     { return p.def }
func (p *Parameter) Len() int             { return len(p.points) }

// All returns every control point in time order.
func (p *Parameter) All() []host.Point {
	return append([]host.Point(nil), p.points...)
}

func (p *Parameter) Points(begin, end host.Blick) []host.Point {
	lo := p.search(begin)
	hi := lo
	for hi < len(p.points) && p.points[hi].Time <= end {
		hi++
	}
	return append([]host.Point(nil), p.points[lo:hi]...)
}

func (p *Parameter) Add(t host.Blick, value float64) {
	i := p.search(t)
	if i < len(p.points) && p.points[i].Time == t {
		p.points[i].Value = value
		return
	}
	p.points = append(p.points, host.Point{})
	copy(p.points[i+1:], p.points[i:])
	p.points[i] = host.Point{Time: t, Value: value}
}

func (p *Parameter) Remove(t host.Blick) bool {
	i := p.search(t)
	if i >= len(p.points) || p.points[i].Time != t {
		return false
	}
	p.points = append(p.points[:i], p.points[i+1:]...)
	return true
}

func (p *Parameter) Value(t host.Blick) float64 {
	n := len(p.points)
	if n == 0 {
		return p.def
	}
	i := p.search(t)
	switch {
	case i < n && p.points[i].Time == t:
		return p.points[i].Value
	case i == 0:
		return p.points[0].Value
	case i == n:
		return p.points[n-1].Value
	}
	a, b := p.points[i-1], p.points[i]
	frac := float64(t-a.Time) / float64(b.Time-a.Time)
	return a.Value + (b.Value-a.Value)*frac
}

// search returns the index of the first point with Time >= t.
func (p *Parameter) search(t host.Blick) int {
	return sort.Search(len(p.points), func(i int) bool {
		return p.points[i].Time >= t
	})
}
