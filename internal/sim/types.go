package sim

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
)

// Day is the base timestep: one simulated day in seconds.
const Day = 86400.0

// Observer is notified after every integration call with a read-only view of
// the bodies. The slice must not be retained or modified.
type Observer interface {
	OnStep(bodies []dynamo.Body, t float64)
}

type Metric interface {
	Name() string
	Observe(bodies []dynamo.Body, t float64)
	Value() float64
	Reset()
}

type Config struct {
	BaseDt float64
	// Factor is the number of base steps per tick. Below 1 it scales a single
	// step instead.
	Factor float64
	Method integrators.Method
}

func DefaultConfig() Config {
	return Config{
		BaseDt: Day,
		Factor: 1,
		Method: integrators.DefaultMethod,
	}
}

func (c Config) validate() error {
	if c.BaseDt <= 0 {
		return fmt.Errorf("base dt must be positive, got %g", c.BaseDt)
	}
	if !c.Method.Valid() {
		return fmt.Errorf("unknown integrator: %v", c.Method)
	}
	return nil
}

// Trajectory is a sampled history of body positions.
type Trajectory struct {
	Names  []string
	Times  []float64
	Frames [][]r2.Vec
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// Series returns the positions of body i across all frames.
func (tr *Trajectory) Series(i int) []r2.Vec {
	out := make([]r2.Vec, len(tr.Frames))
	for k, f := range tr.Frames {
		out[k] = f[i]
	}
	return out
}

// Recorder is an Observer that samples positions every Every integration
// calls.
type Recorder struct {
	Every int
	traj  Trajectory
	calls int
}

func NewRecorder(names []string, every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{
		Every: every,
		traj:  Trajectory{Names: append([]string(nil), names...)},
	}
}

// Record stores a frame unconditionally. Used for the initial state.
func (r *Recorder) Record(bodies []dynamo.Body, t float64) {
	frame := make([]r2.Vec, len(bodies))
	for i, b := range bodies {
		frame[i] = b.Pos
	}
	r.traj.Times = append(r.traj.Times, t)
	r.traj.Frames = append(r.traj.Frames, frame)
}

func (r *Recorder) OnStep(bodies []dynamo.Body, t float64) {
	r.calls++
	if r.calls%r.Every == 0 {
		r.Record(bodies, t)
	}
}

func (r *Recorder) Trajectory() *Trajectory { return &r.traj }
