// Package loudness measures programme loudness after ITU-R BS.1770.
//
// Each channel is K-weighted (a +4 dB shelf above 1.5 kHz followed by a
// 38 Hz highpass) and squared. Mean squares are collected in 100 ms steps;
// four steps make one 400 ms gating block and thirty make the 3 s
// short-term window. Integrated loudness applies the absolute (-70 LUFS)
// and relative (-10 LU) gates over every block seen since the last reset.
package loudness
