// Package audio adapts the engine's pull-based render callback to real
// output transports. Two backends exist: an ebiten audio player (for the
// UI, which already runs an ebiten game loop) and a standalone oto player
// for terminal use.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Source renders interleaved stereo float32 frames. It is the audio
// callback: implementations must not block or allocate.
type Source interface {
	Process(dst []float32)
}

// Output is a running audio transport feeding from a Source.
type Output interface {
	Play()
	Pause()
	Close() error
}

// streamReader exposes a Source as the f32le byte stream ebiten's player
// pulls from. A live instrument never ends, so Read never returns EOF.
type streamReader struct {
	mu     sync.Mutex
	source Source
	buf    []float32
}

func (r *streamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(r.buf[i]))
	}
	return frames * 8, nil
}

type ebitenOutput struct {
	player *ebitaudio.Player
}

var (
	ctxOnce sync.Once
	ctx     *ebitaudio.Context
	ctxRate int
)

func sharedContext(sampleRate int) (*ebitaudio.Context, error) {
	ctxOnce.Do(func() {
		ctxRate = sampleRate
		ctx = ebitaudio.NewContext(sampleRate)
	})
	if ctxRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", ctxRate, sampleRate)
	}
	return ctx, nil
}

// NewEbitenOutput streams source through ebiten's shared audio context.
func NewEbitenOutput(sampleRate int, source Source) (Output, error) {
	c, err := sharedContext(sampleRate)
	if err != nil {
		return nil, err
	}
	pl, err := c.NewPlayerF32(&streamReader{source: source})
	if err != nil {
		return nil, err
	}
	return &ebitenOutput{player: pl}, nil
}

func (o *ebitenOutput) Play()  { o.player.Play() }
func (o *ebitenOutput) Pause() { o.player.Pause() }

func (o *ebitenOutput) Close() error {
	o.player.Pause()
	return o.player.Close()
}
