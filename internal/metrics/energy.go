package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// EnergyDrift tracks relative mechanical energy drift against a reference
// energy. The first observation becomes the reference unless one was set.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	increasing    bool
	decreasing    bool
	hasReference  bool
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", increasing: true, decreasing: true}
}

// NewEnergyDriftFrom uses the energy of bodies as the reference, so the first
// step's drift is measured too.
func NewEnergyDriftFrom(bodies []dynamo.Body) *EnergyDrift {
	e := NewEnergyDrift()
	e.initialEnergy = physics.Energy(bodies)
	e.currentEnergy = e.initialEnergy
	e.hasReference = true
	return e
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []dynamo.Body, t float64) {
	energy := physics.Energy(bodies)

	if !e.hasReference {
		e.initialEnergy = energy
		e.currentEnergy = energy
		e.hasReference = true
		e.samples++
		return
	}

	if energy <= e.currentEnergy {
		e.increasing = false
	}
	if energy >= e.currentEnergy {
		e.decreasing = false
	}
	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		e.maxDrift = math.Max(e.maxDrift, e.Drift())
	}
}

// Value is the largest relative drift seen so far.
func (e *EnergyDrift) Value() float64 { return e.maxDrift }

// Drift is the current relative drift.
func (e *EnergyDrift) Drift() float64 {
	if e.initialEnergy == 0 {
		return 0
	}
	return math.Abs(e.currentEnergy-e.initialEnergy) / math.Abs(e.initialEnergy)
}

// Monotonic reports whether energy moved strictly in one direction on every
// observed step.
func (e *EnergyDrift) Monotonic() bool {
	return e.samples > 1 && (e.increasing || e.decreasing)
}

func (e *EnergyDrift) Initial() float64 { return e.initialEnergy }
func (e *EnergyDrift) Current() float64 { return e.currentEnergy }

func (e *EnergyDrift) Reset() {
	*e = EnergyDrift{name: e.name, increasing: true, decreasing: true}
}
