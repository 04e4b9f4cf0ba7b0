// Package config holds the yaml run configuration: the binary's makeup, the
// stepping parameters, and the unit system.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arvela/binsim/internal/units"
)

const (
	DefaultNStar      = 500
	DefaultMass       = 0.002
	DefaultSeparation = 2.0
	DefaultSoftening  = 0.02
	DefaultDt         = 0.001
	DefaultSteps      = 5000
)

type Config struct {
	NStar1 int `yaml:"nstar_1"`
	NStar2 int `yaml:"nstar_2"`

	ParticleMass float64 `yaml:"particle_mass"`
	Separation   float64 `yaml:"separation"`
	Softening    float64 `yaml:"softening"`

	Dt        float64 `yaml:"dt"`
	Steps     int     `yaml:"steps"`
	StopRatio float64 `yaml:"stop_ratio"`
	Seed      int64   `yaml:"seed"`

	Units units.System `yaml:"units"`
}

func DefaultConfig() *Config {
	return &Config{
		NStar1:       DefaultNStar,
		NStar2:       DefaultNStar,
		ParticleMass: DefaultMass,
		Separation:   DefaultSeparation,
		Softening:    DefaultSoftening,
		Dt:           DefaultDt,
		Steps:        DefaultSteps,
		StopRatio:    0.005,
		Units:        units.Default(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

func (c *Config) Validate() error {
	if c.NStar1 <= 0 || c.NStar2 <= 0 {
		return fmt.Errorf("config: star particle counts must be positive, got %d and %d", c.NStar1, c.NStar2)
	}
	if c.ParticleMass <= 0 {
		return fmt.Errorf("config: particle mass must be positive, got %g", c.ParticleMass)
	}
	if c.Separation <= 0 {
		return fmt.Errorf("config: separation must be positive, got %g", c.Separation)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("config: steps must be positive, got %d", c.Steps)
	}
	if c.StopRatio < 0 || c.StopRatio > 1 {
		return fmt.Errorf("config: stop_ratio must be in [0, 1], got %g", c.StopRatio)
	}
	return nil
}

// TotalN returns the combined particle count.
func (c *Config) TotalN() int { return c.NStar1 + c.NStar2 }
