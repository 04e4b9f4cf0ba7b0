// Package metrics provides sim.Metric implementations for the observables a
// binary-inspiral run cares about: the star separation, the quadrupole
// gravitational-wave luminosity, and the energy drift of the integrator.
package metrics

import (
	"math"

	"github.com/arvela/binsim/internal/body"
	"github.com/arvela/binsim/internal/inspiral"
	"github.com/arvela/binsim/internal/physics"
)

// Separation tracks the distance between the two star centers of mass.
type Separation struct {
	effect *inspiral.Effect
	last   float64
}

func NewSeparation(e *inspiral.Effect) *Separation {
	return &Separation{effect: e}
}

func (m *Separation) Name() string { return "separation" }

func (m *Separation) Observe(p *body.Particles, t float64) {
	if m.effect.Separate() {
		m.last = m.effect.Separation()
	}
}

func (m *Separation) Value() float64 { return m.last }
func (m *Separation) Reset()         { m.last = 0 }

// Luminosity tracks the quadrupole gravitational-wave power of the binary,
// in code units. Zero once the stars have merged.
type Luminosity struct {
	effect *inspiral.Effect
	g, c   float64
	last   float64
}

func NewLuminosity(e *inspiral.Effect, g, c float64) *Luminosity {
	return &Luminosity{effect: e, g: g, c: c}
}

func (m *Luminosity) Name() string { return "gw_luminosity" }

func (m *Luminosity) Observe(p *body.Particles, t float64) {
	if !m.effect.Separate() {
		m.last = 0
		return
	}
	d := m.effect.Separation()
	if d == 0 {
		return
	}

	m1 := p.Mass * float64(m.effect.NStar1)
	m2 := p.Mass * float64(m.effect.NStar2)

	g4 := math.Pow(m.g, 4)
	c5 := math.Pow(m.c, 5)
	m.last = (32.0 / 5.0) * g4 * m1 * m1 * m2 * m2 * (m1 + m2) / (c5 * math.Pow(d, 5))
}

func (m *Luminosity) Value() float64 { return m.last }
func (m *Luminosity) Reset()         { m.last = 0 }

// EnergyDrift tracks the relative drift of the system's mechanical energy
// from its value at the first observation.
type EnergyDrift struct {
	model   *physics.Binary
	initial float64
	drift   float64
	primed  bool
}

func NewEnergyDrift(b *physics.Binary) *EnergyDrift {
	return &EnergyDrift{model: b}
}

func (m *EnergyDrift) Name() string { return "energy_drift" }

func (m *EnergyDrift) Observe(p *body.Particles, t float64) {
	e := m.model.Energy(p)
	if !m.primed {
		m.initial = e
		m.primed = true
		return
	}
	if m.initial != 0 {
		m.drift = math.Abs(e-m.initial) / math.Abs(m.initial)
	}
}

func (m *EnergyDrift) Value() float64 { return m.drift }

func (m *EnergyDrift) Reset() {
	m.initial = 0
	m.drift = 0
	m.primed = false
}
