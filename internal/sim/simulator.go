package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Simulator owns a body set and the simulated clock. It is not safe for
// concurrent use; Compare runs independent simulators instead.
type Simulator struct {
	bodies    dynamo.Bodies
	scratch   dynamo.Bodies
	cfg       Config
	time      float64
	steps     int
	err       error
	metrics   []Metric
	observers []Observer
}

// New validates bodies and takes a private copy of them.
func New(bodies dynamo.Bodies, cfg Config) (*Simulator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	set, err := dynamo.NewBodies(bodies...)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		bodies:    set,
		scratch:   make(dynamo.Bodies, len(set)),
		cfg:       cfg,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetMethod takes effect from the next tick.
func (s *Simulator) SetMethod(m integrators.Method) { s.cfg.Method = m }

// SetFactor takes effect from the next tick. No clamping is applied.
func (s *Simulator) SetFactor(f float64) { s.cfg.Factor = f }

func (s *Simulator) Method() integrators.Method { return s.cfg.Method }
func (s *Simulator) Factor() float64            { return s.cfg.Factor }
func (s *Simulator) BaseDt() float64            { return s.cfg.BaseDt }
func (s *Simulator) Time() float64              { return s.time }
func (s *Simulator) Steps() int                 { return s.steps }
func (s *Simulator) Len() int                   { return len(s.bodies) }

// Err returns the fatal error that halted the simulator, if any.
func (s *Simulator) Err() error { return s.err }

// Snapshot returns a copy of the current bodies.
func (s *Simulator) Snapshot() []dynamo.Body {
	return s.bodies.Clone()
}

func (s *Simulator) Energy() float64 {
	return physics.Energy(s.bodies)
}

func (s *Simulator) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Plan returns the number of integration calls one tick makes and the dt of
// each.
func (s *Simulator) Plan() (calls int, dt float64) {
	f := s.cfg.Factor
	if f < 1 {
		return 1, s.cfg.BaseDt * f
	}
	return int(math.Round(f)), s.cfg.BaseDt
}

// Tick advances the simulation by one rendered frame. A step that leaves any
// body with non-finite state halts the simulator: the error is returned as a
// *dynamo.SimulationError, the bodies keep their last finite state, and every
// later tick fails with dynamo.ErrHalted.
func (s *Simulator) Tick() error {
	if s.err != nil {
		return fmt.Errorf("%w: %w", dynamo.ErrHalted, s.err)
	}

	calls, dt := s.Plan()
	method := s.cfg.Method

	for i := 0; i < calls; i++ {
		copy(s.scratch, s.bodies)
		if err := method.Step(s.scratch, dt); err != nil {
			s.err = &dynamo.SimulationError{
				Step:    s.steps,
				Time:    s.time,
				Method:  method.String(),
				Wrapped: err,
			}
			return s.err
		}

		s.bodies, s.scratch = s.scratch, s.bodies
		s.time += dt
		s.steps++

		for _, m := range s.metrics {
			m.Observe(s.bodies, s.time)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.bodies, s.time)
		}
	}

	return nil
}

// Run performs ticks headlessly. ctx is checked between ticks only; a tick in
// progress always completes.
func (s *Simulator) Run(ctx context.Context, ticks int) error {
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.Tick(); err != nil {
			return err
		}
	}
	return nil
}
