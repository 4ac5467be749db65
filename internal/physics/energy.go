package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

func Kinetic(bodies dynamo.Bodies) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += 0.5 * b.Mass * r2.Norm2(b.Vel)
	}
	return ke
}

func Potential(bodies dynamo.Bodies) float64 {
	pe := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			r := dynamo.Distance(bodies[i].Pos, bodies[j].Pos)
			pe -= G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

// Energy returns total mechanical energy in joules.
func Energy(bodies dynamo.Bodies) float64 {
	return Kinetic(bodies) + Potential(bodies)
}

func Momentum(bodies dynamo.Bodies) r2.Vec {
	var p r2.Vec
	for _, b := range bodies {
		p = r2.Add(p, r2.Scale(b.Mass, b.Vel))
	}
	return p
}

// AngularMomentum returns the z component of total angular momentum about the
// origin.
func AngularMomentum(bodies dynamo.Bodies) float64 {
	L := 0.0
	for _, b := range bodies {
		L += b.Mass * r2.Cross(b.Pos, b.Vel)
	}
	return L
}

func CenterOfMass(bodies dynamo.Bodies) r2.Vec {
	var c r2.Vec
	total := 0.0
	for _, b := range bodies {
		c = r2.Add(c, r2.Scale(b.Mass, b.Pos))
		total += b.Mass
	}
	if total == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/total, c)
}
