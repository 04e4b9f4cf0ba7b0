// Package inspiral models the orbital decay of a two-star binary from
// gravitational-wave emission.
//
// Each star is a contiguous cloud of particles: star 1 owns indices
// [0, NStar1), star 2 owns the rest. Once per step the host calls
// [Effect.Advance], which recomputes the stars' centers of mass, checks
// whether enough particles have crossed to the wrong side of the barycenter
// to call the system merged, and — while the stars are still separate —
// updates the two per-star drag vectors from the quadrupole luminosity of a
// circular-orbit binary. [Effect.Accumulate] then hands each particle its
// star's drag force during force assembly.
//
// The merged state is terminal: after Advance first reports a merger, the
// effect contributes zero force for the rest of the run.
//
// The effect persists itself in two places: the particle counts of the two
// stars go into the snapshot header (Nstar_1, Nstar_2), and the merger
// threshold ratio is a parameter-file option (stop_ratio).
package inspiral
