package audio

import (
	"encoding/binary"
	"math"

	"github.com/ebitengine/oto/v3"
)

// otoOutput drives a Source through oto directly, with no ebiten game loop
// required. Stereo float32, matching the engine's frame format.
type otoOutput struct {
	ctx     *oto.Context
	player  *oto.Player
	playing bool
}

type otoReader struct {
	source Source
	buf    []float32
}

func (r *otoReader) Read(p []byte) (int, error) {
	samples := len(p) / 4
	samples -= samples % 2 // whole stereo frames only
	if samples == 0 {
		return 0, nil
	}
	if cap(r.buf) < samples {
		r.buf = make([]float32, samples)
	}
	r.buf = r.buf[:samples]
	r.source.Process(r.buf)
	for i, s := range r.buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return samples * 4, nil
}

// NewOtoOutput opens an oto context at the given rate and prepares a player
// over source. Playback starts on Play.
func NewOtoOutput(sampleRate int, source Source) (Output, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready
	return &otoOutput{
		ctx:    ctx,
		player: ctx.NewPlayer(&otoReader{source: source}),
	}, nil
}

func (o *otoOutput) Play() {
	if !o.playing {
		o.player.Play()
		o.playing = true
	}
}

func (o *otoOutput) Pause() {
	if o.playing {
		o.player.Pause()
		o.playing = false
	}
}

func (o *otoOutput) Close() error {
	o.playing = false
	return o.player.Close()
}
