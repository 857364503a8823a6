// Package dynamics provides a soft-knee peak compressor and a limiter built
// on it.
//
// Gain is computed in the log2 domain with a quadratic knee. Building with
// the fastmath tag swaps log2/exp2 for the algo-approx approximations.
package dynamics
