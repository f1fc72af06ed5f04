// Package resample reads PCM tables at fractional positions with linear
// interpolation. It is the inner loop of the audio callback: no allocation,
// no clamping, no error returns. Rate legality is the caller's contract.
package resample

// Advance produces one interpolated sample at pos and returns the advanced
// position. Index reads wrap modulo the table length, so circular sources
// interpolate across the seam; one-shot callers must stop playback before
// the cursor crosses the end (Crossed tells them when).
//
// The advanced position wraps by repeated subtraction. A single subtraction
// covers every legal rate, but the loop keeps the cursor in range even for
// rates larger than the table.
func Advance(src []int16, pos, rate float64) (int16, float64) {
	n := len(src)
	i := int(pos)
	f := pos - float64(i)

	i %= n
	s1 := float64(src[i])
	s2 := float64(src[(i+1)%n])
	out := int16(s1 + (s2-s1)*f)

	next := pos + rate
	for next >= float64(n) {
		next -= float64(n)
	}
	return out, next
}

// Crossed reports whether one step from pos at rate reaches or passes the
// end of a table of length n.
func Crossed(pos, rate float64, n int) bool {
	return pos+rate >= float64(n)
}

// TwoPass applies speed and pitch as two block resampling passes: the source
// is speed-resampled into a scratch block first, then that block is
// pitch-resampled into the output. The order is deliberate and not
// commutative with doing pitch first; it must not be swapped.
type TwoPass struct {
	speedPos float64 // cursor into the source table
	pitchPos float64 // cursor into the scratch block
	scratch  []int16
}

// NewTwoPass preallocates scratch for blocks up to blockSize samples.
func NewTwoPass(blockSize int) *TwoPass {
	return &TwoPass{scratch: make([]int16, blockSize)}
}

// Reset rewinds both cursors to the start of the source.
func (t *TwoPass) Reset() {
	t.speedPos = 0
	t.pitchPos = 0
}

// Pos returns the speed-pass cursor into the source table.
func (t *TwoPass) Pos() float64 { return t.speedPos }

// Process fills dst from a looping source. With unity pitch only the speed
// pass runs, reading straight from the source. Otherwise the speed pass
// fills scratch and the pitch pass re-reads scratch at the pitch ratio,
// resetting to the block start when it runs off the end (block-local bounds
// reset, not wraparound: the scratch block is not circular).
//
// len(dst) must not exceed the blockSize given to NewTwoPass.
func (t *TwoPass) Process(dst []int16, src []int16, speed, pitch float64) {
	// A one-sample block has no pair to interpolate; the speed pass alone
	// serves it.
	if pitch == 1.0 || len(dst) < 2 {
		pos := t.speedPos
		for i := range dst {
			dst[i], pos = Advance(src, pos, speed)
		}
		t.speedPos = pos
		return
	}

	block := t.scratch[:len(dst)]
	pos := t.speedPos
	for i := range block {
		block[i], pos = Advance(src, pos, speed)
	}
	t.speedPos = pos

	n := len(block)
	pp := t.pitchPos
	for i := range dst {
		idx := int(pp)
		if idx >= n-1 {
			pp = 0
			idx = 0
		}
		f := pp - float64(idx)
		s1 := float64(block[idx])
		s2 := float64(block[idx+1])
		dst[i] = int16(s1 + (s2-s1)*f)
		pp += pitch
	}
	t.pitchPos = pp
}
