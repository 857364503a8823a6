// Package modulation provides slow control-rate modulators.
//
//   - LFO: sine oscillator advanced in seconds, for parameter sweeps.
//   - Panner: equal-power stereo placement of a mono signal.
package modulation
