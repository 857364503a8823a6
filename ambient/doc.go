// Package ambient is a real-time ambient-noise engine.
//
// An [Engine] synthesizes white, pink or brown noise and shapes it through a
// fixed chain: highpass, a gentle 1.2 kHz dip, a slowly swept lowpass and a
// soft limiter, followed by a breathing master gain and a drifting stereo
// pan. Every tunable value ramps exponentially, and switching the noise type
// fades the output to near silence before the generator changes, so the
// output never clicks.
//
// The engine is pull based. An audio host calls [Engine.Render] (or
// [Engine.RenderInterleaved]) from its callback goroutine; that path never
// locks, allocates or logs. All other methods form the control surface and
// may be called from any goroutine.
package ambient
