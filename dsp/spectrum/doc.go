// Package spectrum estimates power spectra of real signals.
//
// An [Analyzer] owns an FFT plan, a window and all scratch memory, so
// repeated calls do not allocate. [Welch] averages overlapped analyzer
// frames into a power spectral density; [OctaveSlopeDB] fits the spectral
// tilt used to characterise coloured noise.
package spectrum
