package integrators

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// StepLeapfrog is kick-drift-kick velocity Verlet. The force model runs twice:
// once at the start positions and once after the drift.
func StepLeapfrog(bodies dynamo.Bodies, dt float64) {
	halfDt := dt * 0.5

	kick(bodies, physics.Impulses(bodies, halfDt))

	for i := range bodies {
		b := &bodies[i]
		b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
	}

	kick(bodies, physics.Impulses(bodies, halfDt))
}

func kick(bodies dynamo.Bodies, imp []r2.Vec) {
	for i := range bodies {
		b := &bodies[i]
		b.Vel = r2.Add(b.Vel, r2.Scale(1/b.Mass, imp[i]))
	}
}
