// Package design computes biquad coefficients from musical parameters.
//
// Designers follow the RBJ audio-EQ cookbook. Invalid inputs (non-positive
// or super-Nyquist frequencies, non-finite values) yield zero coefficients
// rather than an error, so callers on the audio path can redesign every
// control slice without branching; use [Valid] to check up front.
package design
