package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Viewport maps world coordinates to canvas dots. Scale is metres per cell
// column; a dot covers Scale/2 metres on both axes, which keeps orbits round
// on a terminal with 1:2 cells.
type Viewport struct {
	Width, Height int
	Scale         float64
	Center        r2.Vec
}

func (v Viewport) metresPerDot() float64 { return v.Scale / 2 }

// Project returns the dot for p and whether it is on the canvas. +y is up.
func (v Viewport) Project(p r2.Vec) (int, int, bool) {
	d := r2.Scale(1/v.metresPerDot(), r2.Sub(p, v.Center))
	fx := math.Floor(d.X) + float64(v.Width)
	fy := float64(v.Height*2) - math.Floor(d.Y) - 1
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return 0, 0, false
	}
	if fx < 0 || fy < 0 || fx >= float64(v.Width*2) || fy >= float64(v.Height*4) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// Zoom multiplies the scale by f. f < 1 zooms in.
func (v *Viewport) Zoom(f float64) {
	if f > 0 && !math.IsInf(f, 0) {
		v.Scale *= f
	}
}

// Scene keeps per-body trails and draws snapshots through a Viewport.
type Scene struct {
	View     Viewport
	TrailLen int

	canvas *Canvas
	trails [][]r2.Vec
	names  []string
}

func NewScene(width, height int, scale float64) *Scene {
	return &Scene{
		View:     Viewport{Width: width, Height: height, Scale: scale},
		TrailLen: 120,
		canvas:   NewCanvas(width, height),
	}
}

// Resize keeps trails and scale.
func (s *Scene) Resize(width, height int) {
	if width == s.View.Width && height == s.View.Height {
		return
	}
	s.View.Width, s.View.Height = width, height
	s.canvas = NewCanvas(width, height)
}

// Observe appends the current positions to the trails. A change in the body
// set drops old trails.
func (s *Scene) Observe(bodies []dynamo.Body) {
	if len(bodies) != len(s.trails) {
		s.trails = make([][]r2.Vec, len(bodies))
	}
	s.names = s.names[:0]
	for i, b := range bodies {
		s.names = append(s.names, b.Name)
		s.trails[i] = append(s.trails[i], b.Pos)
		if over := len(s.trails[i]) - s.TrailLen; over > 0 {
			s.trails[i] = s.trails[i][over:]
		}
	}
}

func (s *Scene) ClearTrails() {
	for i := range s.trails {
		s.trails[i] = s.trails[i][:0]
	}
}

// Draw paints trails and then bodies onto the canvas and returns it. The
// canvas is reused between calls.
func (s *Scene) Draw(bodies []dynamo.Body) *Canvas {
	c := s.canvas
	c.Clear()

	for i, trail := range s.trails {
		if i >= len(s.names) {
			break
		}
		color := StyleFor(s.names[i]).Color
		for _, p := range trail {
			if x, y, ok := s.View.Project(p); ok {
				c.Set(x, y, color)
			}
		}
	}

	for _, b := range bodies {
		st := StyleFor(b.Name)
		if x, y, ok := s.View.Project(b.Pos); ok {
			c.FillCircle(x, y, st.Radius, st.Color)
		}
	}
	return c
}
