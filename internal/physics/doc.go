// Package physics implements the 2D gravitational N-body core.
//
//   - [Body]: a point mass with kinematic state and a bounded [Trail]
//   - [Gravity]: the pairwise force law with a minimum-distance floor
//   - [Pairwise], [Parallel]: force accumulators writing each body's Acc
//   - [SemiImplicitEuler]: the fixed-step integrator
//   - [InitializeOrbits]: circular-orbit velocities around the dominant body
//
// A tick is always Accumulate over every body followed by Advance over every
// body; no body may be advanced before all accelerations are written.
package physics
