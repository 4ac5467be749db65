// Package physics provides the Newtonian force model for a planar body set.
//
// [Impulses] performs direct pairwise summation over every ordered pair of
// distinct indices and is the only input the integrators need. [Energy],
// [Momentum] and [AngularMomentum] are conserved quantities used to judge
// integrator quality:
//
//	e0 := physics.Energy(bodies)
//	// ... step ...
//	drift := math.Abs(physics.Energy(bodies)-e0) / math.Abs(e0)
package physics
