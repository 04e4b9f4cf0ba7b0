package body

import "math"

// Vec is a 3-vector in code units.
type Vec [3]float64

func (v Vec) Add(o Vec) Vec {
	return Vec{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec) Scale(f float64) Vec {
	return Vec{v[0] * f, v[1] * f, v[2] * f}
}

func (v Vec) Dot(o Vec) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Particles holds the state of every particle in the run. Positions carry a
// fourth slot per particle for the SPH smoothing length; the dynamics in this
// repository never read it, but the snapshot format round-trips it.
type Particles struct {
	N    int
	Mass float64 // uniform per-particle mass, code units

	Pos [4][]float64
	Vel [3][]float64
}

// NewParticles allocates zeroed state for n particles of the given mass.
func NewParticles(n int, mass float64) *Particles {
	p := &Particles{N: n, Mass: mass}
	for d := range p.Pos {
		p.Pos[d] = make([]float64, n)
	}
	for d := range p.Vel {
		p.Vel[d] = make([]float64, n)
	}
	return p
}

// Clone returns a deep copy.
func (p *Particles) Clone() *Particles {
	c := NewParticles(p.N, p.Mass)
	for d := range p.Pos {
		copy(c.Pos[d], p.Pos[d])
	}
	for d := range p.Vel {
		copy(c.Vel[d], p.Vel[d])
	}
	return c
}

// Position returns particle i's spatial coordinates (the smoothing-length
// slot is excluded).
func (p *Particles) Position(i int) Vec {
	return Vec{p.Pos[0][i], p.Pos[1][i], p.Pos[2][i]}
}

// Velocity returns particle i's velocity.
func (p *Particles) Velocity(i int) Vec {
	return Vec{p.Vel[0][i], p.Vel[1][i], p.Vel[2][i]}
}

// IsValid reports whether every coordinate and velocity is finite.
func (p *Particles) IsValid() bool {
	for d := 0; d < 3; d++ {
		for i := 0; i < p.N; i++ {
			if math.IsNaN(p.Pos[d][i]) || math.IsInf(p.Pos[d][i], 0) {
				return false
			}
			if math.IsNaN(p.Vel[d][i]) || math.IsInf(p.Vel[d][i], 0) {
				return false
			}
		}
	}
	return true
}

// CenterOfMass reduces the index range [lo, hi) to its center of mass,
// center-of-mass velocity, and total mass. An empty range yields zeros.
func CenterOfMass(p *Particles, lo, hi int) (com, vcom Vec, mass float64) {
	if hi <= lo {
		return Vec{}, Vec{}, 0
	}
	for i := lo; i < hi; i++ {
		for d := 0; d < 3; d++ {
			com[d] += p.Pos[d][i]
			vcom[d] += p.Vel[d][i]
		}
	}
	inv := 1.0 / float64(hi-lo)
	mass = p.Mass * float64(hi-lo)
	return com.Scale(inv), vcom.Scale(inv), mass
}
