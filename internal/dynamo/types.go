package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Body is a point mass moving in the plane. Units are SI: metres, metres per
// second and kilograms.
type Body struct {
	Name string
	Pos  r2.Vec
	Vel  r2.Vec
	Mass float64
}

// IsValid reports whether every position and velocity component is finite.
func (b Body) IsValid() bool {
	return finite(b.Pos.X) && finite(b.Pos.Y) && finite(b.Vel.X) && finite(b.Vel.Y)
}

func (b Body) String() string {
	return fmt.Sprintf("%s m=%.4e pos=(%.4e, %.4e) vel=(%.4e, %.4e)",
		b.Name, b.Mass, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y)
}

// Bodies is an ordered body set. A body's index is its identity for the whole
// run; names are labels only and may repeat.
type Bodies []Body

// NewBodies validates bs and returns them as a set. The returned set does not
// alias bs.
func NewBodies(bs ...Body) (Bodies, error) {
	if len(bs) == 0 {
		return nil, ErrNoBodies
	}
	for i, b := range bs {
		if err := validate(b); err != nil {
			return nil, fmt.Errorf("body %d (%q): %w", i, b.Name, err)
		}
	}
	return Bodies(bs).Clone(), nil
}

func validate(b Body) error {
	if !finite(b.Mass) || b.Mass <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidMass, b.Mass)
	}
	if !b.IsValid() {
		return ErrNonFinite
	}
	return nil
}

// Validate checks the set against the same rules as NewBodies.
func (s Bodies) Validate() error {
	_, err := NewBodies(s...)
	return err
}

func (s Bodies) Clone() Bodies {
	c := make(Bodies, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every body in the set has finite state.
func (s Bodies) IsValid() bool {
	for _, b := range s {
		if !b.IsValid() {
			return false
		}
	}
	return true
}

// FirstInvalid returns the index of the first body with non-finite state, or -1.
func (s Bodies) FirstInvalid() int {
	for i, b := range s {
		if !b.IsValid() {
			return i
		}
	}
	return -1
}

func (s Bodies) Names() []string {
	names := make([]string, len(s))
	for i, b := range s {
		names[i] = b.Name
	}
	return names
}

func (s Bodies) Positions() []r2.Vec {
	pos := make([]r2.Vec, len(s))
	for i, b := range s {
		pos[i] = b.Pos
	}
	return pos
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
