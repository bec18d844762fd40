package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rootlab/internal/calc"
	"github.com/san-kum/rootlab/internal/equation"
	"github.com/san-kum/rootlab/internal/solver"
)

const (
	DefaultMaxIterations = calc.DefaultMaxIterations
	DefaultEstimate      = 1e-4
	DefaultFormat        = "table"

	// EnvPrefix prefixes every environment override, e.g. ROOTLAB_ESTIMATE.
	EnvPrefix = "ROOTLAB"
)

type Config struct {
	Equation      int          `yaml:"equation" toml:"equation" envconfig:"equation"`
	Method        string       `yaml:"method" toml:"method" envconfig:"method"`
	Left          float64      `yaml:"left" toml:"left" envconfig:"left"`
	Right         float64      `yaml:"right" toml:"right" envconfig:"right"`
	Estimate      float64      `yaml:"estimate" toml:"estimate" envconfig:"estimate"`
	System        SystemConfig `yaml:"system" toml:"system" envconfig:"system"`
	MaxIterations int          `yaml:"max_iterations" toml:"max_iterations" envconfig:"max_iterations"`
	ScalarStep    float64      `yaml:"scalar_step" toml:"scalar_step" envconfig:"scalar_step"`
	JacobianStep  float64      `yaml:"jacobian_step" toml:"jacobian_step" envconfig:"jacobian_step"`
	Format        string       `yaml:"format" toml:"format" envconfig:"format"`
	PartialTrace  bool         `yaml:"partial_trace" toml:"partial_trace" envconfig:"partial_trace"`
	Log           LogConfig    `yaml:"log" toml:"log" envconfig:"log"`
}

type SystemConfig struct {
	ID        int     `yaml:"id" toml:"id" envconfig:"id"`
	X0        float64 `yaml:"x0" toml:"x0" envconfig:"x0"`
	Y0        float64 `yaml:"y0" toml:"y0" envconfig:"y0"`
	Tolerance float64 `yaml:"tolerance" toml:"tolerance" envconfig:"tolerance"`
}

type LogConfig struct {
	Level       string `yaml:"level" toml:"level" envconfig:"level"`
	Development bool   `yaml:"development" toml:"development" envconfig:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		Equation: int(equation.Equation2),
		Method:   solver.Bisection.String(),
		Left:     -3,
		Right:    -1,
		Estimate: DefaultEstimate,
		System: SystemConfig{
			ID:        int(equation.System1),
			X0:        1,
			Y0:        1,
			Tolerance: DefaultEstimate,
		},
		MaxIterations: DefaultMaxIterations,
		ScalarStep:    calc.DefaultScalarStep,
		JacobianStep:  calc.DefaultJacobianStep,
		Format:        DefaultFormat,
		Log:           LogConfig{Level: "info"},
	}
}

// Load reads a YAML or TOML file over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes path over cfg, leaving keys the file omits untouched.
// Files ending in .toml are decoded as TOML; everything else as YAML.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isTOML(path) {
		_, err = toml.Decode(string(data), cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(cfg)
		data = []byte(sb.String())
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays ROOTLAB_* variables onto c. Unset variables leave the
// current value untouched.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var err error
	if _, e := equation.Lookup(c.Equation); e != nil {
		err = multierr.Append(err, fmt.Errorf("equation %d: %w", c.Equation, e))
	}
	if _, e := solver.ParseMethod(c.Method); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := equation.LookupSystem(c.System.ID); e != nil {
		err = multierr.Append(err, fmt.Errorf("system %d: %w", c.System.ID, e))
	}
	if !(c.Estimate > 0) {
		err = multierr.Append(err, fmt.Errorf("estimate %g: %w", c.Estimate, calc.ErrInvalidTolerance))
	}
	if !(c.System.Tolerance > 0) {
		err = multierr.Append(err, fmt.Errorf("system tolerance %g: %w", c.System.Tolerance, calc.ErrInvalidTolerance))
	}
	if c.MaxIterations <= 0 {
		err = multierr.Append(err, fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations))
	}
	if !(c.ScalarStep > 0) || !(c.JacobianStep > 0) {
		err = multierr.Append(err, fmt.Errorf("difference steps must be positive"))
	}
	switch c.Format {
	case "json", "yaml", "csv", "table":
	default:
		err = multierr.Append(err, fmt.Errorf("unknown format %q", c.Format))
	}
	return err
}

// Settings returns the solver settings described by c.
func (c *Config) Settings() calc.Settings {
	return calc.Settings{
		MaxIterations: c.MaxIterations,
		ScalarStep:    c.ScalarStep,
		JacobianStep:  c.JacobianStep,
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
