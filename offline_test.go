package drumpad

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestRenderSamplesProducesAudio(t *testing.T) {
	samples, err := RenderSamples(16000, 0.25, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(samples) != 16000/4*2 {
		t.Fatalf("got %d samples, want %d", len(samples), 16000/4*2)
	}
	var energy float64
	for _, s := range samples {
		if s < 0 {
			energy -= float64(s)
		} else {
			energy += float64(s)
		}
	}
	if energy == 0 {
		t.Fatal("expected non-zero audio energy from the default tone deck")
	}
}

func TestWriteWAVRoundTrip(t *testing.T) {
	samples, err := RenderSamples(16000, 0.1, func(p *Player) {
		p.SelectSample()
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.wav")
	if err := WriteWAV(path, samples, 16000); err != nil {
		t.Fatalf("write wav: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("encoder produced an invalid WAV file")
	}
	if dec.SampleRate != 16000 || dec.NumChans != 2 || dec.BitDepth != 16 {
		t.Fatalf("format = %d Hz %d ch %d bit, want 16000/2/16",
			dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
}
