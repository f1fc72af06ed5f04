// Package store holds the immutable PCM sample tables the engine plays from.
// All samples are 16-bit signed mono; entries are validated once at
// registration so the audio path never sees a table it cannot interpolate.
package store

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Sample is one read-only PCM table. Data is shared, never written after
// construction, and lives for the lifetime of the process.
type Sample struct {
	Name string
	Data []int16
	Rate int  // native sample rate in Hz
	Loop bool // looping sources wrap; one-shots stop at end-of-data
}

// New validates and wraps a PCM table. Linear interpolation reads pairs of
// adjacent samples, so fewer than two samples is a construction error.
func New(name string, data []int16, rate int) (*Sample, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("sample %q: need at least 2 samples, got %d", name, len(data))
	}
	if rate <= 0 {
		return nil, fmt.Errorf("sample %q: invalid sample rate %d", name, rate)
	}
	return &Sample{Name: name, Data: data, Rate: rate}, nil
}

// NewLoop is New for circular sources (tone tables, ambience beds).
func NewLoop(name string, data []int16, rate int) (*Sample, error) {
	s, err := New(name, data, rate)
	if err != nil {
		return nil, err
	}
	s.Loop = true
	return s, nil
}

func (s *Sample) Len() int { return len(s.Data) }

// DecodePCM converts raw little-endian s16 bytes into samples. A trailing
// odd byte is rejected rather than silently dropped.
func DecodePCM(raw []byte) ([]int16, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("raw pcm: odd byte count %d", len(raw))
	}
	out := make([]int16, len(raw)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}
	return out, nil
}

// SineTable builds a one-cycle sine wavetable. amplitude is a 0..1 scale of
// full int16 range; the stock tone uses 0.3 to leave mixing headroom.
func SineTable(name string, cells int, amplitude float64, rate int) (*Sample, error) {
	if cells < 2 {
		return nil, fmt.Errorf("sine table %q: need at least 2 cells, got %d", name, cells)
	}
	data := make([]int16, cells)
	for i := range data {
		data[i] = int16(amplitude * 32767.0 * math.Sin(2*math.Pi*float64(i)/float64(cells)))
	}
	return NewLoop(name, data, rate)
}
