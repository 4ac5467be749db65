package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// G is the Newtonian gravitational constant in m³/(kg·s²).
const G = 6.6743e-11

// Impulses returns, for each body, the sum over every other body of the
// gravitational force scaled by dt. Entry i points toward the bodies pulling
// on body i.
//
// Pairs are excluded by index, so bodies sharing a name still interact. Two
// distinct bodies at the same position give a non-finite entry; callers are
// expected to check the stepped state rather than rely on a guard here.
func Impulses(bodies dynamo.Bodies, dt float64) []r2.Vec {
	n := len(bodies)
	acc := make([]r2.Vec, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			acc[i] = r2.Add(acc[i], pairImpulse(bodies[i], bodies[j], dt))
		}
	}

	return acc
}

// Forces is Impulses over a unit interval, in newtons.
func Forces(bodies dynamo.Bodies) []r2.Vec {
	return Impulses(bodies, 1)
}

// PairForce returns the force exerted on a by b.
func PairForce(a, b dynamo.Body) r2.Vec {
	return pairImpulse(a, b, 1)
}

// ForceMagnitude is G·m_a·m_b/d².
func ForceMagnitude(a, b dynamo.Body) float64 {
	d := dynamo.Distance(a.Pos, b.Pos)
	return G * (a.Mass * b.Mass) / (d * d)
}

func pairImpulse(a, b dynamo.Body, dt float64) r2.Vec {
	dir := dynamo.Normalize(r2.Sub(b.Pos, a.Pos))
	return r2.Scale(ForceMagnitude(a, b)*dt, dir)
}
