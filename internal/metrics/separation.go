package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Separation tracks the distance between two bodies, identified by index.
type Separation struct {
	name    string
	a, b    int
	initial float64
	min     float64
	max     float64
	last    float64
	samples int
}

func NewSeparation(a, b int) *Separation {
	return &Separation{
		name: fmt.Sprintf("separation_%d_%d", a, b),
		a:    a,
		b:    b,
		min:  math.Inf(1),
	}
}

func (s *Separation) Name() string { return s.name }

func (s *Separation) Observe(bodies []dynamo.Body, t float64) {
	if s.a >= len(bodies) || s.b >= len(bodies) {
		return
	}
	d := dynamo.Distance(bodies[s.a].Pos, bodies[s.b].Pos)
	if s.samples == 0 {
		s.initial = d
	}
	s.last = d
	s.min = math.Min(s.min, d)
	s.max = math.Max(s.max, d)
	s.samples++
}

// Value is the relative change of the latest distance from the first one.
func (s *Separation) Value() float64 {
	if s.samples == 0 || s.initial == 0 {
		return 0
	}
	return math.Abs(s.last-s.initial) / s.initial
}

func (s *Separation) Min() float64  { return s.min }
func (s *Separation) Max() float64  { return s.max }
func (s *Separation) Last() float64 { return s.last }

func (s *Separation) Reset() {
	s.initial, s.last, s.max, s.samples = 0, 0, 0, 0
	s.min = math.Inf(1)
}
