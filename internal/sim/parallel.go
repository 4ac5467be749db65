package sim

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Outcome is the result of one method in a comparison.
type Outcome struct {
	Method      integrators.Method
	Final       []dynamo.Body
	Steps       int
	Time        float64
	EnergyDrift float64
	MaxDrift    float64
	// History is the relative energy drift after each integration call.
	History     []float64
	Metrics     map[string]float64
	Err         error
}

// Compare runs the same initial bodies through each method for the given
// number of ticks. Every method gets its own simulator and body copy, so runs
// share nothing. A numerical hazard in one method is reported in its Outcome;
// only cancellation aborts the whole comparison.
func Compare(ctx context.Context, bodies dynamo.Bodies, cfg Config, methods []integrators.Method, ticks int, metrics func() []Metric) ([]Outcome, error) {
	outcomes := make([]Outcome, len(methods))

	g, ctx := errgroup.WithContext(ctx)
	for i, m := range methods {
		i, m := i, m
		g.Go(func() error {
			c := cfg
			c.Method = m

			s, err := New(bodies, c)
			if err != nil {
				return err
			}
			if metrics != nil {
				for _, mt := range metrics() {
					s.AddMetric(mt)
				}
			}
			drift := &driftTracker{e0: s.Energy()}
			s.AddObserver(drift)

			runErr := s.Run(ctx, ticks)
			if runErr != nil && ctx.Err() != nil {
				return ctx.Err()
			}

			outcomes[i] = Outcome{
				Method:      m,
				Final:       s.Snapshot(),
				Steps:       s.Steps(),
				Time:        s.Time(),
				EnergyDrift: drift.last,
				MaxDrift:    drift.max,
				History:     drift.history,
				Metrics:     s.Metrics(),
				Err:         runErr,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

type driftTracker struct {
	e0, last, max float64
	history       []float64
}

func (d *driftTracker) OnStep(bodies []dynamo.Body, t float64) {
	if d.e0 == 0 {
		return
	}
	d.last = math.Abs(physics.Energy(bodies)-d.e0) / math.Abs(d.e0)
	d.max = math.Max(d.max, d.last)
	d.history = append(d.history, d.last)
}
