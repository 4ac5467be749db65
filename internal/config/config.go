package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	DefaultIntegrator  = "symplectic"
	DefaultFactor      = 1.0
	DefaultBaseDt      = sim.Day
	DefaultTicks       = 365
	DefaultRecordEvery = 1
	// DefaultScale is metres per display cell.
	DefaultScale = 5e9
)

type Config struct {
	Integrator  string       `yaml:"integrator"`
	Factor      float64      `yaml:"factor"`
	BaseDt      float64      `yaml:"base_dt"`
	Ticks       int          `yaml:"ticks"`
	RecordEvery int          `yaml:"record_every"`
	Scale       float64      `yaml:"scale"`
	BodiesFile  string       `yaml:"bodies_file,omitempty"`
	IncludeSun  bool         `yaml:"include_sun,omitempty"`
	Only        []string     `yaml:"only,omitempty"`
	Bodies      []BodyConfig `yaml:"bodies,omitempty"`
}

// BodyConfig is a body as written in YAML, in SI units.
type BodyConfig struct {
	Name     string     `yaml:"name"`
	Position [2]float64 `yaml:"position"`
	Velocity [2]float64 `yaml:"velocity"`
	Mass     float64    `yaml:"mass"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator:  DefaultIntegrator,
		Factor:      DefaultFactor,
		BaseDt:      DefaultBaseDt,
		Ticks:       DefaultTicks,
		RecordEvery: DefaultRecordEvery,
		Scale:       DefaultScale,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the run settings. Body values are checked when the set is
// built.
func (c *Config) Validate() error {
	var errs []error
	if _, err := integrators.ParseMethod(c.Integrator); err != nil {
		errs = append(errs, err)
	}
	if c.BaseDt <= 0 {
		errs = append(errs, fmt.Errorf("base_dt must be positive, got %g", c.BaseDt))
	}
	if c.Factor <= 0 {
		errs = append(errs, fmt.Errorf("factor must be positive, got %g", c.Factor))
	}
	if c.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks must not be negative, got %d", c.Ticks))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %g", c.Scale))
	}
	if c.BodiesFile != "" && len(c.Bodies) > 0 {
		errs = append(errs, errors.New("bodies and bodies_file are mutually exclusive"))
	}
	return errors.Join(errs...)
}

func (c *Config) Method() (integrators.Method, error) {
	return integrators.ParseMethod(c.Integrator)
}

func (c *Config) SimConfig() (sim.Config, error) {
	m, err := c.Method()
	if err != nil {
		return sim.Config{}, err
	}
	return sim.Config{BaseDt: c.BaseDt, Factor: c.Factor, Method: m}, nil
}

// BuildBodies converts the inline body list. It returns dynamo.ErrNoBodies
// when the list is empty.
func (c *Config) BuildBodies() (dynamo.Bodies, error) {
	bs := make([]dynamo.Body, len(c.Bodies))
	for i, b := range c.Bodies {
		bs[i] = b.Body()
	}
	return dynamo.NewBodies(bs...)
}

func (b BodyConfig) Body() dynamo.Body {
	return dynamo.Body{
		Name: b.Name,
		Pos:  r2.Vec{X: b.Position[0], Y: b.Position[1]},
		Vel:  r2.Vec{X: b.Velocity[0], Y: b.Velocity[1]},
		Mass: b.Mass,
	}
}

func FromBody(b dynamo.Body) BodyConfig {
	return BodyConfig{
		Name:     b.Name,
		Position: [2]float64{b.Pos.X, b.Pos.Y},
		Velocity: [2]float64{b.Vel.X, b.Vel.Y},
		Mass:     b.Mass,
	}
}
