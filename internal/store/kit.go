package store

import (
	"embed"
	"fmt"
)

// KitRate is the native rate of the embedded kit assets.
const KitRate = 16000

// ToneCells matches the 2048-cell sine table of the original tone source.
const ToneCells = 2048

// ToneAmplitude leaves headroom so the tone survives mixing unclipped.
const ToneAmplitude = 0.3

//go:embed kitdata/*.pcm
var kitFS embed.FS

// Kit is the fixed set of sounds bound to the voice bank plus the looping
// deck sources. Pads are one-shots in bank-slot order.
type Kit struct {
	Pads    []*Sample
	Ambient *Sample // looping sample deck source
	Tone    *Sample // looping sine deck source
}

var padNames = []string{"kick", "snare", "hat", "clap"}

// DefaultKit decodes the embedded assets. The assets are baked into the
// binary, so a failure here is a build defect, not a runtime condition.
func DefaultKit() (*Kit, error) {
	kit := &Kit{}
	for _, name := range padNames {
		s, err := loadEmbedded(name, false)
		if err != nil {
			return nil, err
		}
		kit.Pads = append(kit.Pads, s)
	}
	amb, err := loadEmbedded("loop", true)
	if err != nil {
		return nil, err
	}
	kit.Ambient = amb
	tone, err := SineTable("tone", ToneCells, ToneAmplitude, KitRate)
	if err != nil {
		return nil, err
	}
	kit.Tone = tone
	return kit, nil
}

func loadEmbedded(name string, loop bool) (*Sample, error) {
	raw, err := kitFS.ReadFile("kitdata/" + name + ".pcm")
	if err != nil {
		return nil, fmt.Errorf("embedded kit: %w", err)
	}
	data, err := DecodePCM(raw)
	if err != nil {
		return nil, fmt.Errorf("embedded kit %q: %w", name, err)
	}
	if loop {
		return NewLoop(name, data, KitRate)
	}
	return New(name, data, KitRate)
}
