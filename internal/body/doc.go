// Package body provides the particle store shared by every stage of a run.
//
// Particles are kept as dense per-dimension arrays rather than an array of
// structs, matching the layout the force loops iterate over:
//
//   - [Particles.Pos]: x, y, z plus a smoothing-length slot per particle
//   - [Particles.Vel]: vx, vy, vz per particle
//
// The package also carries the small pieces of shared numerics the rest of
// the simulation leans on: the [Vec] 3-vector, the [CenterOfMass] reduction
// over an index range, and the fork-join [ParallelFor] / [ParallelSum]
// helpers for order-independent per-particle reductions.
//
// Particle indices are stable for the lifetime of a run: nothing in this
// repository inserts, removes, or reorders particles, which is what lets a
// contiguous index range stand for a star.
package body
