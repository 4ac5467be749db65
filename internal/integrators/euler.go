package integrators

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// StepEuler is explicit Euler: positions move with the pre-step velocity, then
// velocities take the impulse evaluated at the pre-step positions. First
// order; orbital energy grows every step.
func StepEuler(bodies dynamo.Bodies, dt float64) {
	imp := physics.Impulses(bodies, dt)
	for i := range bodies {
		b := &bodies[i]
		b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
		b.Vel = r2.Add(b.Vel, r2.Scale(1/b.Mass, imp[i]))
	}
}

// StepSymplecticEuler is semi-implicit Euler: velocities take the impulse
// first and positions move with the updated velocity. First order with bounded
// energy error.
func StepSymplecticEuler(bodies dynamo.Bodies, dt float64) {
	imp := physics.Impulses(bodies, dt)
	for i := range bodies {
		b := &bodies[i]
		b.Vel = r2.Add(b.Vel, r2.Scale(1/b.Mass, imp[i]))
		b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
	}
}
