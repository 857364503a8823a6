// Package player streams an engine to the default audio device.
package player

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

const bytesPerSample = 4

// Source renders interleaved float32 frames. Implementations must not
// block; RenderInterleaved runs on the device callback goroutine.
type Source interface {
	RenderInterleaved(dst []float32)
}

// reader adapts a Source to the io.Reader pulled by the device, encoding
// float32 little-endian samples.
type reader struct {
	src      atomic.Pointer[sourceBox]
	channels int
	buf      []float32
}

type sourceBox struct {
	Source
}

func newReader(src Source, channels, preallocFrames int) *reader {
	r := &reader{channels: channels, buf: make([]float32, preallocFrames*channels)}
	r.setSource(src)
	return r
}

func (r *reader) setSource(src Source) {
	if src == nil {
		r.src.Store(nil)
		return
	}
	r.src.Store(&sourceBox{src})
}

// Read fills p with whole frames and pads any trailing partial frame with
// silence.
func (r *reader) Read(p []byte) (int, error) {
	frameBytes := bytesPerSample * r.channels
	frames := len(p) / frameBytes
	box := r.src.Load()
	if box == nil || frames == 0 {
		clear(p)
		return len(p), nil
	}

	n := frames * r.channels
	if len(r.buf) < n {
		r.buf = make([]float32, n)
	}
	samples := r.buf[:n]
	box.RenderInterleaved(samples)
	EncodeFloat32LE(p, samples)
	clear(p[n*bytesPerSample:])
	return len(p), nil
}

// EncodeFloat32LE writes samples into dst as little-endian IEEE 754
// floats. dst must hold 4 bytes per sample.
func EncodeFloat32LE(dst []byte, samples []float32) {
	for i, v := range samples {
		binary.LittleEndian.PutUint32(dst[i*bytesPerSample:], math.Float32bits(v))
	}
}
