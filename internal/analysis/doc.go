// Package analysis provides offline inspection of trajectories and captured
// output channels:
//
//   - [PowerSpectrum]: FFT magnitude spectrum of one channel
//   - [DominantFrequency]: strongest non-DC frequency in Hz
//   - [Summarize]: min, max, mean, spread and rail saturation
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [Ensemble]: the same estimate from several starting points in parallel
//   - [XYPlot]: ASCII XY view of two channels
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(stepper, x0, p.Dt, 50000, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
