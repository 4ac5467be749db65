package integrators

import (
	"fmt"
	"strings"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Method selects one of the stepping schemes. The zero value is Euler.
type Method int

const (
	Euler Method = iota
	SymplecticEuler
	Leapfrog
)

const (
	// DefaultMethod is used when nothing else is selected.
	DefaultMethod = SymplecticEuler

	// Recommended has the best long-run energy behaviour of the three.
	Recommended = Leapfrog
)

var methodNames = map[Method]string{
	Euler:           "euler",
	SymplecticEuler: "symplectic",
	Leapfrog:        "leapfrog",
}

var methodAliases = map[string]Method{
	"euler":            Euler,
	"explicit":         Euler,
	"explicit_euler":   Euler,
	"symplectic":       SymplecticEuler,
	"symplectic_euler": SymplecticEuler,
	"semi_implicit":    SymplecticEuler,
	"leapfrog":         Leapfrog,
	"verlet":           Leapfrog,
	"velocity_verlet":  Leapfrog,
}

// Methods lists every scheme in selection order.
func Methods() []Method {
	return []Method{Euler, SymplecticEuler, Leapfrog}
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

func (m Method) Valid() bool {
	_, ok := methodNames[m]
	return ok
}

// Order is the global order of accuracy.
func (m Method) Order() int {
	if m == Leapfrog {
		return 2
	}
	return 1
}

func (m Method) Symplectic() bool {
	return m == SymplecticEuler || m == Leapfrog
}

// ParseMethod accepts the canonical names and a few common aliases, ignoring
// case and treating '-' like '_'.
func ParseMethod(s string) (Method, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if m, ok := methodAliases[key]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("unknown integrator: %s", s)
}

func (m Method) MarshalText() ([]byte, error) {
	if _, ok := methodNames[m]; !ok {
		return nil, fmt.Errorf("unknown integrator: %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Step advances bodies in place by dt and fails if any body ends the step with
// non-finite state.
func (m Method) Step(bodies dynamo.Bodies, dt float64) error {
	switch m {
	case Euler:
		StepEuler(bodies, dt)
	case SymplecticEuler:
		StepSymplecticEuler(bodies, dt)
	case Leapfrog:
		StepLeapfrog(bodies, dt)
	default:
		return fmt.Errorf("unknown integrator: %d", int(m))
	}
	return check(bodies)
}

func check(bodies dynamo.Bodies) error {
	if i := bodies.FirstInvalid(); i >= 0 {
		return fmt.Errorf("body %d (%q): %w", i, bodies[i].Name, dynamo.ErrNonFinite)
	}
	return nil
}
