// Package smooth ramps control parameters exponentially towards a target.
//
// A Smoother splits ownership between two goroutines. The control side sets
// targets with SetTarget and SetTargetFrom; the audio side advances the value
// with Advance or Fill. The two sides exchange state through atomics only, so
// the audio side never blocks.
package smooth
