package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Zero32 sets all values in buf to 0.
func Zero32(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
}

// ToFloat32 narrows src into dst and returns the number of converted samples.
// Values outside [-1, 1] are clipped so a device sink never wraps.
func ToFloat32(dst []float32, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] = float32(Clamp(src[i], -1, 1))
	}
	return n
}

// ScaleToFloat32 writes src*gain into dst, clipped to [-1, 1].
func ScaleToFloat32(dst []float32, src []float64, gain float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] = float32(Clamp(src[i]*gain, -1, 1))
	}
	return n
}
