// Package noise synthesizes white, pink and brown noise one sample at a time.
//
// A Source keeps explicit state records for the coloured generators
// (PinkState, BrownState). Switching the active Type never resets them, so a
// generator that is switched away and back resumes from where it stopped.
//
// Sources are single-producer: GenerateBlock and Next belong to one
// goroutine (the audio path). SetType may be called from any goroutine.
package noise
