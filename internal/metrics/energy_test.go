package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
)

func earthSun() dynamo.Bodies {
	return dynamo.Bodies{
		{Name: "Earth", Pos: r2.Vec{Y: 1.495978707e11}, Vel: r2.Vec{X: 29.8e3}, Mass: 5.9722e24},
		{Name: "Sun", Mass: 1.988416e30},
	}
}

func TestEnergyDriftReference(t *testing.T) {
	bodies := earthSun()
	m := NewEnergyDrift()
	m.Observe(bodies, 0)

	if m.Value() != 0 || m.Drift() != 0 {
		t.Errorf("expected zero drift after first sample, got %v", m.Value())
	}
	if want := physics.Energy(bodies); m.Initial() != want {
		t.Errorf("Initial() = %e, want %e", m.Initial(), want)
	}
	if m.Monotonic() {
		t.Error("a single sample cannot be monotonic")
	}
}

func TestEnergyDriftEuler(t *testing.T) {
	bodies := earthSun()
	m := NewEnergyDriftFrom(bodies)

	for i := 0; i < 200; i++ {
		if err := integrators.Euler.Step(bodies, 86400); err != nil {
			t.Fatal(err)
		}
		m.Observe(bodies, float64(i+1)*86400)
	}

	if m.Value() < 0.01 {
		t.Errorf("expected visible euler drift, got %e", m.Value())
	}
	if !m.Monotonic() {
		t.Error("expected monotonic energy growth for explicit euler")
	}
	if math.Abs(m.Drift()-m.Value()) > 1e-12 {
		t.Errorf("monotonic drift should peak at the last sample: %e vs %e", m.Drift(), m.Value())
	}
}

func TestEnergyDriftLeapfrogNotMonotonic(t *testing.T) {
	bodies := earthSun()
	m := NewEnergyDriftFrom(bodies)

	for i := 0; i < 365; i++ {
		if err := integrators.Leapfrog.Step(bodies, 86400); err != nil {
			t.Fatal(err)
		}
		m.Observe(bodies, float64(i+1)*86400)
	}

	if m.Value() > 0.01 {
		t.Errorf("leapfrog drift too high: %e", m.Value())
	}
	if m.Monotonic() {
		t.Error("leapfrog energy error should oscillate, not grow monotonically")
	}
}

func TestEnergyDriftReset(t *testing.T) {
	bodies := earthSun()
	m := NewEnergyDriftFrom(bodies)
	bodies[0].Vel.X *= 1.1
	m.Observe(bodies, 1)
	if m.Value() == 0 {
		t.Fatal("expected non-zero drift")
	}

	m.Reset()
	if m.Value() != 0 || m.Initial() != 0 {
		t.Error("expected zero drift after reset")
	}
	if m.Name() != "energy_drift" {
		t.Errorf("name lost on reset: %q", m.Name())
	}
}

func TestSeparation(t *testing.T) {
	s := NewSeparation(0, 1)
	bodies := dynamo.Bodies{
		{Name: "a", Mass: 1},
		{Name: "b", Pos: r2.Vec{X: 10}, Mass: 1},
	}

	s.Observe(bodies, 0)
	bodies[1].Pos.X = 12
	s.Observe(bodies, 1)
	bodies[1].Pos.X = 9
	s.Observe(bodies, 2)

	if s.Min() != 9 || s.Max() != 12 || s.Last() != 9 {
		t.Errorf("min/max/last = %v/%v/%v", s.Min(), s.Max(), s.Last())
	}
	if math.Abs(s.Value()-0.1) > 1e-12 {
		t.Errorf("Value() = %v, want 0.1", s.Value())
	}

	s.Observe(bodies[:1], 3)
	if s.Last() != 9 {
		t.Error("out of range index should be ignored")
	}

	s.Reset()
	if s.Value() != 0 || !math.IsInf(s.Min(), 1) {
		t.Error("reset did not clear state")
	}
}
