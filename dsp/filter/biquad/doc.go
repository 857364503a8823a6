// Package biquad provides the second-order IIR runtime used by the filter
// chain.
//
// A [Section] runs Direct Form II Transposed over [Coefficients]. Block
// processing is dispatched once per process to the fastest kernel registered
// for the host CPU. Coefficient design lives in dsp/filter/design.
//
// Coefficients may be replaced between blocks with [Section.SetCoefficients];
// the delay line is kept so that slowly swept filters stay click-free.
package biquad
