// Package units holds the physical constants and the unit system that maps
// between cgs and the simulation's internal (code) units.
//
// Code units are defined by three scales: the length of one code length unit
// in cm, the mass of one code mass unit in g, and the speed of one code
// velocity unit in cm/s. Everything else derives from those. The defaults
// match the common galactic convention (kpc, 1e10 M_sun, km/s).
package units

// Physical constants in cgs.
const (
	SpeedOfLight = 2.99792458e10 // cm/s
	Gravity      = 6.6743e-8     // cm^3 g^-1 s^-2
	SolarMass    = 1.989e33      // g
	Parsec       = 3.085678e18   // cm
	Kiloparsec   = 3.085678e21   // cm
)

// System defines the simulation's internal unit scales in cgs.
type System struct {
	Length   float64 `yaml:"length"`   // cm per code length unit
	Mass     float64 `yaml:"mass"`     // g per code mass unit
	Velocity float64 `yaml:"velocity"` // cm/s per code velocity unit
}

// Default returns the galactic unit convention: one code length unit is a
// kiloparsec, one code mass unit is 1e10 solar masses, one code velocity
// unit is a km/s.
func Default() System {
	return System{
		Length:   Kiloparsec,
		Mass:     1.989e43,
		Velocity: 1e5,
	}
}

// Time returns the length of one code time unit in seconds.
func (s System) Time() float64 {
	return s.Length / s.Velocity
}

// C returns the speed of light expressed in code velocity units.
func (s System) C() float64 {
	return SpeedOfLight / s.Velocity
}

// G returns the gravitational constant expressed in code units.
func (s System) G() float64 {
	return Gravity * s.Mass / (s.Length * s.Velocity * s.Velocity)
}
