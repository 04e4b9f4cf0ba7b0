package inspiral

import (
	"errors"
	"log"
	"math"

	"github.com/arvela/binsim/internal/body"
)

// DefaultStopRatio is the fraction of all particles that must cross the
// barycenter before the stars are considered merged.
const DefaultStopRatio = 0.005

// minChunk is the smallest per-worker slice of the crossing-count reduction.
const minChunk = 1024

// ErrNoPartition is returned by Init when the star partition was never
// populated, e.g. when the loaded snapshot is not a binary run.
var ErrNoPartition = errors.New("inspiral: star partition not initialized")

// Effect is the gravitational-wave drag applied to every particle of a
// binary system. One Effect drives one binary; all fields are owned by the
// simulation that constructed it.
type Effect struct {
	// NStar1 and NStar2 partition the particle array: star 1 owns indices
	// [0, NStar1), star 2 owns [NStar1, NStar1+NStar2). Zero means the
	// partition was never populated.
	NStar1, NStar2 int

	stopRatio   float64
	threshold   int
	c1, c2      float64
	separate    bool
	optionsRead int

	// kinematics snapshot, refreshed by Advance while separate
	com1, com2   body.Vec
	vcom1, vcom2 body.Vec
	sep          float64
	f1, f2       body.Vec

	logger *log.Logger
}

// New returns an effect with an empty partition and the default stop ratio.
// The stars are considered separate until Advance detects a merger.
func New() *Effect {
	return &Effect{
		stopRatio: DefaultStopRatio,
		separate:  true,
		logger:    log.Default(),
	}
}

// SetLogger redirects the effect's informational output.
func (e *Effect) SetLogger(l *log.Logger) { e.logger = l }

// SetPartition assigns the per-star particle counts directly, bypassing a
// header read.
func (e *Effect) SetPartition(n1, n2 int) {
	e.NStar1, e.NStar2 = n1, n2
}

// Init derives the force coefficients and the merger threshold. mass is the
// uniform particle mass and c the speed of light, both in code units.
//
// If the partition was never populated the effect is disabled for the run
// (every later Advance and Force call is a no-op) and ErrNoPartition is
// returned; the host can keep running without gravitational-wave drag.
func (e *Effect) Init(totalN int, mass, c float64) error {
	if e.NStar1 <= 0 {
		e.separate = false
		return ErrNoPartition
	}

	e.threshold = int(float64(totalN) * e.stopRatio)
	if e.threshold < 1 {
		e.threshold = 1
	}

	// Quadrupole gravitational-wave power for a circular-orbit binary,
	// pre-scaled by per-star particle counts so that the force summed over a
	// star's particles carries that star's share of dE/dt.
	m4 := mass * mass * mass * mass
	c5 := c * c * c * c * c
	n1, n2 := float64(e.NStar1), float64(e.NStar2)
	e.c1 = -(32.0 / 5.0) * n1 * n2 * n2 * n2 * m4 / c5
	e.c2 = -(32.0 / 5.0) * n2 * n1 * n1 * n1 * m4 / c5

	e.logger.Printf("inspiral: star particle counts %d, %d", e.NStar1, e.NStar2)
	return nil
}

// Separate reports whether the stars are still treated as distinct bodies.
func (e *Effect) Separate() bool { return e.separate }

// Threshold returns the crossing count at which a merger is declared.
func (e *Effect) Threshold() int { return e.threshold }

// StopRatio returns the configured merger threshold ratio.
func (e *Effect) StopRatio() float64 { return e.stopRatio }

// Coefficients returns the two force-scaling coefficients set by Init.
func (e *Effect) Coefficients() (c1, c2 float64) { return e.c1, e.c2 }

// Separation returns the distance between the two star centers of mass as of
// the last Advance while separate.
func (e *Effect) Separation() float64 { return e.sep }

// Centers returns the two star centers of mass as of the last Advance.
func (e *Effect) Centers() (com1, com2 body.Vec) { return e.com1, e.com2 }

// Advance refreshes the effect for one step: it recomputes the kinematics
// snapshot, tests for a merger, and updates the drag vectors. It returns
// true exactly once, on the step the merger is first detected. After that
// every call is a no-op returning false.
func (e *Effect) Advance(p *body.Particles) bool {
	if !e.separate {
		return false
	}
	if e.mergerCheck(p) {
		e.separate = false
		e.f1, e.f2 = body.Vec{}, body.Vec{}
		return true
	}
	e.forceUpdate()
	return false
}

// mergerCheck recomputes the per-star centers of mass and counts particles
// sitting on the wrong side of the barycenter along the star-1 axis. It is a
// cheap merger proxy: no overlap or shape detection, only crossing counts.
func (e *Effect) mergerCheck(p *body.Particles) bool {
	com1, vcom1, m1 := body.CenterOfMass(p, 0, e.NStar1)
	com2, vcom2, m2 := body.CenterOfMass(p, e.NStar1, p.N)
	e.com1, e.vcom1 = com1, vcom1
	e.com2, e.vcom2 = com2, vcom2

	bary := com1.Scale(m1).Add(com2.Scale(m2)).Scale(1.0 / (m1 + m2))

	// points from the barycenter toward star 1; magnitude is irrelevant,
	// only the sign of the projection is used
	dir := com1.Sub(bary)

	n1 := e.NStar1
	crossed := body.ParallelSum(p.N, minChunk, func(start, end int) int {
		count := 0
		for i := start; i < end; i++ {
			proj := (p.Pos[0][i]-bary[0])*dir[0] +
				(p.Pos[1][i]-bary[1])*dir[1] +
				(p.Pos[2][i]-bary[2])*dir[2]
			if i < n1 {
				if proj < 0 {
					count++
				}
			} else if proj > 0 {
				count++
			}
		}
		return count
	})

	return crossed >= e.threshold
}

// forceUpdate recomputes the two drag vectors from the kinematics snapshot.
// A star whose center of mass is exactly at rest gets zero drag for the
// step; it radiates nothing at this order.
func (e *Effect) forceUpdate() {
	e.sep = e.com1.Sub(e.com2).Norm()
	d5 := math.Pow(e.sep, 5)

	e.f1 = dragForce(e.c1, e.vcom1, d5)
	e.f2 = dragForce(e.c2, e.vcom2, d5)
}

func dragForce(coeff float64, vcom body.Vec, d5 float64) body.Vec {
	v2 := vcom.Dot(vcom)
	if v2 == 0 || d5 == 0 {
		return body.Vec{}
	}
	return vcom.Scale(coeff / (v2 * d5))
}

// Force returns the drag force on particle i. It is the zero vector once the
// stars have merged or for a negative index. Read-only; safe to call
// concurrently during force assembly.
func (e *Effect) Force(i int) body.Vec {
	if !e.separate || i < 0 {
		return body.Vec{}
	}
	if i < e.NStar1 {
		return e.f1
	}
	return e.f2
}

// Accumulate adds particle i's drag force into f. The potential term phi is
// left untouched: the drag carries no potential contribution.
func (e *Effect) Accumulate(i int, f *body.Vec, phi *float64) {
	fi := e.Force(i)
	f[0] += fi[0]
	f[1] += fi[1]
	f[2] += fi[2]
	_ = phi
}
