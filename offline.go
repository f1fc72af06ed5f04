package drumpad

import (
	"errors"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Render fills dst with interleaved stereo frames from the engine. It is
// only valid on OutputNone players; with a live output the device owns the
// callback and pulling here would race it.
func (p *Player) Render(dst []float32) error {
	if p.kind != OutputNone {
		return errors.New("Render requires OutputNone")
	}
	p.engine.Process(dst)
	return nil
}

// RenderSamples renders seconds of engine output offline. setup, if not
// nil, runs before rendering; commands it enqueues apply on the first
// control tick.
func RenderSamples(sampleRate int, seconds float64, setup func(*Player)) ([]float32, error) {
	p, err := NewPlayer(sampleRate, WithOutput(OutputNone))
	if err != nil {
		return nil, err
	}
	if setup != nil {
		setup(p)
	}
	frames := int(float64(sampleRate) * seconds)
	out := make([]float32, frames*2)
	if err := p.Render(out); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteWAV writes interleaved stereo float32 samples to path as a 16-bit
// PCM WAV file.
func WriteWAV(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		if s > 1 {
			s = 1
		}
		if s < -1 {
			s = -1
		}
		buf.Data[i] = int(s * 32767)
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
