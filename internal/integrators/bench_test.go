package integrators

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

func benchBodies(n int) dynamo.Bodies {
	bodies := make(dynamo.Bodies, n)
	bodies[0] = dynamo.Body{Name: "Sun", Mass: sunMass}
	for i := 1; i < n; i++ {
		r := au * float64(i) * 0.7
		v := math.Sqrt(6.6743e-11 * sunMass / r)
		angle := float64(i) * 0.9
		bodies[i] = dynamo.Body{
			Name: "p",
			Pos:  r2.Vec{X: r * math.Cos(angle), Y: r * math.Sin(angle)},
			Vel:  r2.Vec{X: -v * math.Sin(angle), Y: v * math.Cos(angle)},
			Mass: earthMass,
		}
	}
	return bodies
}

func benchMethod(b *testing.B, m Method, n int) {
	bodies := benchBodies(n)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.Step(bodies, day); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEuler(b *testing.B)           { benchMethod(b, Euler, 2) }
func BenchmarkSymplecticEuler(b *testing.B) { benchMethod(b, SymplecticEuler, 2) }
func BenchmarkLeapfrog(b *testing.B)        { benchMethod(b, Leapfrog, 2) }

func BenchmarkLeapfrog_Bodies10(b *testing.B) { benchMethod(b, Leapfrog, 10) }
func BenchmarkEuler_Bodies10(b *testing.B)    { benchMethod(b, Euler, 10) }
