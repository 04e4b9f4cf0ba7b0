// Package sim drives a binary-inspiral run: once per step it advances the
// gravitational-wave effect, assembles gravity plus drag accelerations, and
// integrates the particles with a velocity-Verlet step.
package sim

import (
	"github.com/arvela/binsim/internal/body"
)

// Config holds the per-run stepping parameters.
type Config struct {
	Dt            float64
	Steps         int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Steps:         1000,
		ValidateState: true,
	}
}

// Metric observes the particle state each step and reduces it to one number.
type Metric interface {
	Name() string
	Observe(p *body.Particles, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(p *body.Particles, step int, t float64)
}

// Result collects the per-step history of a run.
type Result struct {
	Times       []float64
	Separations []float64

	// CoM trails of the two stars, x-y projection
	Orbit1, Orbit2 [][2]float64

	// MergerStep is the step on which the merger was detected, or -1.
	MergerStep int
	MergerTime float64

	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}
