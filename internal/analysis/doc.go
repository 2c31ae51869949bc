// Package analysis provides post-run analysis of recorded trajectories.
//
//   - [PowerSpectrum]: FFT magnitude of a coordinate series
//   - [DominantPeriod]: orbital period estimate from the spectral peak
package analysis
