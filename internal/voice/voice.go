// Package voice implements the fixed playback slots and the hard-clip mixer
// that sums them into one output sample.
package voice

import (
	"fmt"
	"math"

	"github.com/padworks/drumpad-go/internal/resample"
	"github.com/padworks/drumpad-go/internal/store"
)

// DefaultVoices is the stock bank size: one slot per pad.
const DefaultVoices = 4

// Silence is the mixer output when no voice is playing.
const Silence int16 = 0

// Voice is one playback slot: a fixed sample binding, a fractional read
// cursor, and a playing flag. The name is for diagnostics only.
type Voice struct {
	Name    string
	Sample  *store.Sample
	pos     float64
	playing bool
}

func (v *Voice) Playing() bool { return v.playing }
func (v *Voice) Pos() float64  { return v.pos }

// Bank is a fixed-size set of voices processed by one mixing routine. It is
// owned by the audio path; the control tick reaches it only through the
// engine's tick, never concurrently.
type Bank struct {
	voices []Voice
}

// NewBank binds one voice per sample. The bank size is fixed at
// construction; samples have already passed store validation.
func NewBank(samples []*store.Sample) (*Bank, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("voice bank: no samples")
	}
	b := &Bank{voices: make([]Voice, len(samples))}
	for i, s := range samples {
		if s == nil {
			return nil, fmt.Errorf("voice bank: slot %d has no sample", i)
		}
		b.voices[i] = Voice{Name: s.Name, Sample: s}
	}
	return b, nil
}

func (b *Bank) Len() int { return len(b.voices) }

// Voice exposes a slot for inspection.
func (b *Bank) Voice(i int) *Voice { return &b.voices[i] }

// Trigger starts slot i from the beginning. An already-playing voice
// retriggers from the start rather than being ignored.
func (b *Bank) Trigger(i int) {
	if i < 0 || i >= len(b.voices) {
		return
	}
	v := &b.voices[i]
	v.pos = 0
	v.playing = true
}

// Stop silences slot i without touching its cursor.
func (b *Bank) Stop(i int) {
	if i < 0 || i >= len(b.voices) {
		return
	}
	b.voices[i].playing = false
}

// StopAll silences every slot.
func (b *Bank) StopAll() {
	for i := range b.voices {
		b.voices[i].playing = false
	}
}

// ActiveCount returns how many voices are currently sounding.
func (b *Bank) ActiveCount() int {
	n := 0
	for i := range b.voices {
		if b.voices[i].playing {
			n++
		}
	}
	return n
}

// Sum renders one sample from every playing voice at the given rate and
// returns the unclipped sum. The int32 accumulator holds the full-scale sum
// of far more voices than the bank will ever carry.
//
// A non-looping voice whose advance crosses end-of-data stops, but still
// contributes the sample produced this call; the stop takes effect on the
// next call.
func (b *Bank) Sum(rate float64) int32 {
	var acc int32
	for i := range b.voices {
		v := &b.voices[i]
		if !v.playing {
			continue
		}
		s, next := resample.Advance(v.Sample.Data, v.pos, rate)
		acc += int32(s)
		if !v.Sample.Loop && resample.Crossed(v.pos, rate, v.Sample.Len()) {
			v.playing = false
		}
		v.pos = next
	}
	return acc
}

// Mix is Sum followed by the symmetric hard clip to the int16 range. No
// gain normalization: simultaneous full-scale voices saturate.
func (b *Bank) Mix(rate float64) int16 {
	return Clip(b.Sum(rate))
}

// Clip narrows an accumulator to int16, saturating at the range limits.
func Clip(acc int32) int16 {
	if acc > math.MaxInt16 {
		return math.MaxInt16
	}
	if acc < math.MinInt16 {
		return math.MinInt16
	}
	return int16(acc)
}
