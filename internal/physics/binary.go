// Package physics provides the two-cloud binary model the simulation steps:
// initial conditions for two star-like particle clouds on a circular orbit
// and the softened pairwise self-gravity between all particles.
package physics

import (
	"math"
	"math/rand"

	"github.com/arvela/binsim/internal/body"
)

// parallel force assembly kicks in above this per-worker particle count
const minChunk = 64

// Binary describes a two-star system built from particle clouds. Star 1 owns
// particle indices [0, NStar1), star 2 the rest; nothing in the model ever
// reorders particles across that boundary.
type Binary struct {
	NStar1, NStar2 int

	ParticleMass float64 // code units
	Separation   float64 // initial CoM distance, code units
	CloudRadius  float64 // radius of each particle cloud
	Softening    float64 // gravitational softening length
	G            float64 // gravitational constant, code units
}

// NewBinary returns a binary with the cloud radius defaulted to a quarter of
// the separation.
func NewBinary(n1, n2 int, mass, separation, softening, g float64) *Binary {
	return &Binary{
		NStar1:       n1,
		NStar2:       n2,
		ParticleMass: mass,
		Separation:   separation,
		CloudRadius:  separation / 4,
		Softening:    softening,
		G:            g,
	}
}

// TotalN returns the particle count of both stars.
func (b *Binary) TotalN() int { return b.NStar1 + b.NStar2 }

// InitialState places the two clouds on a circular orbit about their common
// barycenter, in the x-y plane. Each cloud is a uniform sphere; every
// particle of a cloud carries the cloud's orbital velocity.
func (b *Binary) InitialState(rng *rand.Rand) *body.Particles {
	n := b.TotalN()
	p := body.NewParticles(n, b.ParticleMass)

	m1 := b.ParticleMass * float64(b.NStar1)
	m2 := b.ParticleMass * float64(b.NStar2)
	mt := m1 + m2

	// star centers on the x axis, barycenter at the origin
	x1 := -b.Separation * m2 / mt
	x2 := b.Separation * m1 / mt

	// circular orbital speeds about the barycenter
	vOrbit := math.Sqrt(b.G * mt / b.Separation)
	v1 := vOrbit * m2 / mt
	v2 := vOrbit * m1 / mt

	b.fillCloud(p, rng, 0, b.NStar1, body.Vec{x1, 0, 0}, body.Vec{0, v1, 0})
	b.fillCloud(p, rng, b.NStar1, n, body.Vec{x2, 0, 0}, body.Vec{0, -v2, 0})
	return p
}

func (b *Binary) fillCloud(p *body.Particles, rng *rand.Rand, lo, hi int, center, vel body.Vec) {
	for i := lo; i < hi; i++ {
		// uniform in a sphere of CloudRadius
		r := b.CloudRadius * math.Cbrt(rng.Float64())
		theta := math.Acos(2*rng.Float64() - 1)
		phi := 2 * math.Pi * rng.Float64()

		p.Pos[0][i] = center[0] + r*math.Sin(theta)*math.Cos(phi)
		p.Pos[1][i] = center[1] + r*math.Sin(theta)*math.Sin(phi)
		p.Pos[2][i] = center[2] + r*math.Cos(theta)
		p.Pos[3][i] = b.Softening

		p.Vel[0][i] = vel[0]
		p.Vel[1][i] = vel[1]
		p.Vel[2][i] = vel[2]
	}
}

// Gravity writes the softened pairwise gravitational acceleration of every
// particle into ax, ay, az, overwriting their contents. The outer loop runs
// in parallel; each worker owns a disjoint slice of the output arrays.
func (b *Binary) Gravity(p *body.Particles, ax, ay, az []float64) {
	n := p.N
	eps2 := b.Softening * b.Softening
	gm := b.G * p.Mass

	body.ParallelFor(n, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			xi, yi, zi := p.Pos[0][i], p.Pos[1][i], p.Pos[2][i]
			var sx, sy, sz float64

			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				rx := p.Pos[0][j] - xi
				ry := p.Pos[1][j] - yi
				rz := p.Pos[2][j] - zi
				r2 := rx*rx + ry*ry + rz*rz + eps2

				rInv := 1.0 / math.Sqrt(r2)
				f := gm * rInv * rInv * rInv
				sx += f * rx
				sy += f * ry
				sz += f * rz
			}

			ax[i], ay[i], az[i] = sx, sy, sz
		}
	})
}

// Energy returns the total kinetic plus softened potential energy.
func (b *Binary) Energy(p *body.Particles) float64 {
	n := p.N
	eps2 := b.Softening * b.Softening
	m := p.Mass

	ke := 0.0
	for i := 0; i < n; i++ {
		v2 := p.Vel[0][i]*p.Vel[0][i] + p.Vel[1][i]*p.Vel[1][i] + p.Vel[2][i]*p.Vel[2][i]
		ke += 0.5 * m * v2
	}

	pe := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rx := p.Pos[0][j] - p.Pos[0][i]
			ry := p.Pos[1][j] - p.Pos[1][i]
			rz := p.Pos[2][j] - p.Pos[2][i]
			r := math.Sqrt(rx*rx + ry*ry + rz*rz + eps2)
			pe -= b.G * m * m / r
		}
	}

	return ke + pe
}

// Momentum returns the total linear momentum.
func (b *Binary) Momentum(p *body.Particles) body.Vec {
	var mom body.Vec
	for i := 0; i < p.N; i++ {
		mom[0] += p.Mass * p.Vel[0][i]
		mom[1] += p.Mass * p.Vel[1][i]
		mom[2] += p.Mass * p.Vel[2][i]
	}
	return mom
}

// AngularMomentum returns the z component of the total angular momentum.
func (b *Binary) AngularMomentum(p *body.Particles) float64 {
	lz := 0.0
	for i := 0; i < p.N; i++ {
		lz += p.Mass * (p.Pos[0][i]*p.Vel[1][i] - p.Pos[1][i]*p.Vel[0][i])
	}
	return lz
}
