package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/arvela/binsim/internal/body"
	"github.com/arvela/binsim/internal/inspiral"
	"github.com/arvela/binsim/internal/physics"
)

const minChunk = 256

// Simulator owns one run: the binary model for gravity, the inspiral effect
// for gravitational-wave drag, and the step loop tying them together.
type Simulator struct {
	model  *physics.Binary
	effect *inspiral.Effect

	metrics   []Metric
	observers []Observer

	// acceleration scratch, reused across steps
	ax, ay, az    []float64
	axN, ayN, azN []float64
}

func New(model *physics.Binary, effect *inspiral.Effect) *Simulator {
	return &Simulator{model: model, effect: effect}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run steps the particles in place for cfg.Steps steps. The effect advances
// exactly once per step, before force assembly, so the drag each particle
// receives is never computed from stale kinematics.
func (s *Simulator) Run(ctx context.Context, p *body.Particles, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Times:       make([]float64, 0, cfg.Steps),
		Separations: make([]float64, 0, cfg.Steps),
		Orbit1:      make([][2]float64, 0, cfg.Steps),
		Orbit2:      make([][2]float64, 0, cfg.Steps),
		MergerStep:  -1,
		Metrics:     make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.ensureScratch(p.N)
	initialEnergy := s.model.Energy(p)

	t := 0.0
	dt := cfg.Dt
	s.accelerate(p, s.ax, s.ay, s.az)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if merged := s.effect.Advance(p); merged {
			result.MergerStep = i
			result.MergerTime = t
		}

		s.step(p, dt)

		if cfg.ValidateState && !p.IsValid() {
			err := fmt.Errorf("invalid state (NaN/Inf) at step %d, t=%.4f", i, t)
			result.Errors = append(result.Errors, err)
			break
		}

		t += dt
		result.StepsTaken++

		result.Times = append(result.Times, t)
		result.Separations = append(result.Separations, s.effect.Separation())
		com1, com2 := s.effect.Centers()
		result.Orbit1 = append(result.Orbit1, [2]float64{com1[0], com1[1]})
		result.Orbit2 = append(result.Orbit2, [2]float64{com2[0], com2[1]})

		for _, m := range s.metrics {
			m.Observe(p, t)
		}
		for _, o := range s.observers {
			o.OnStep(p, i, t)
		}
	}

	finalEnergy := s.model.Energy(p)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// step advances positions and velocities by one velocity-Verlet step using
// the accelerations left in the scratch arrays by the previous step.
func (s *Simulator) step(p *body.Particles, dt float64) {
	n := p.N
	half := 0.5 * dt * dt

	body.ParallelFor(n, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			p.Pos[0][i] += p.Vel[0][i]*dt + s.ax[i]*half
			p.Pos[1][i] += p.Vel[1][i]*dt + s.ay[i]*half
			p.Pos[2][i] += p.Vel[2][i]*dt + s.az[i]*half
		}
	})

	s.accelerate(p, s.axN, s.ayN, s.azN)

	halfDt := 0.5 * dt
	body.ParallelFor(n, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			p.Vel[0][i] += (s.ax[i] + s.axN[i]) * halfDt
			p.Vel[1][i] += (s.ay[i] + s.ayN[i]) * halfDt
			p.Vel[2][i] += (s.az[i] + s.azN[i]) * halfDt
		}
	})

	s.ax, s.axN = s.axN, s.ax
	s.ay, s.ayN = s.ayN, s.ay
	s.az, s.azN = s.azN, s.az
}

// accelerate assembles the total acceleration: self-gravity plus the
// per-star drag, which is a force and so divides by the particle mass.
func (s *Simulator) accelerate(p *body.Particles, ax, ay, az []float64) {
	s.model.Gravity(p, ax, ay, az)

	invMass := 1.0 / p.Mass
	body.ParallelFor(p.N, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			var f body.Vec
			var phi float64
			s.effect.Accumulate(i, &f, &phi)
			ax[i] += f[0] * invMass
			ay[i] += f[1] * invMass
			az[i] += f[2] * invMass
		}
	})
}

func (s *Simulator) ensureScratch(n int) {
	if len(s.ax) != n {
		s.ax = make([]float64, n)
		s.ay = make([]float64, n)
		s.az = make([]float64, n)
		s.axN = make([]float64, n)
		s.ayN = make([]float64, n)
		s.azN = make([]float64, n)
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	return nil
}
