// Package dynamo holds the body store shared by the force model, the
// integrators and the simulator.
//
//   - [Body]: point mass with name, position, velocity and mass
//   - [Bodies]: ordered set, validated by [NewBodies]
//   - [Distance] and [Normalize]: vector helpers over gonum's r2.Vec
//
// # Identity
//
// Bodies are identified by their index in the set. Names are display labels
// and may repeat; nothing in the core compares them.
//
//	set, err := dynamo.NewBodies(sun, earth)
//	if err != nil {
//	    return err // non-positive mass, non-finite state or empty set
//	}
package dynamo
