// Package drumpad is a small real-time PCM voice engine: four one-shot pad
// voices triggered from debounced inputs, a looping deck source with
// linked or independent speed/pitch control, and a hard-clip mixer, all
// driven from a fixed-rate audio callback.
package drumpad

import (
	"errors"
	"fmt"
	"sync"

	"github.com/padworks/drumpad-go/internal/audio"
	"github.com/padworks/drumpad-go/internal/control"
	"github.com/padworks/drumpad-go/internal/engine"
	"github.com/padworks/drumpad-go/internal/store"
)

// OutputKind selects the audio transport.
type OutputKind int

const (
	// OutputEbiten streams through ebiten's shared audio context. Use this
	// inside an ebiten game loop.
	OutputEbiten OutputKind = iota
	// OutputOto opens a standalone oto device; no game loop required.
	OutputOto
	// OutputNone runs the engine without a device, for offline rendering
	// and tests.
	OutputNone
)

// Pad indices for the stock kit.
const (
	PadKick = iota
	PadSnare
	PadHat
	PadClap
	NumPads
)

type Option func(*playerConfig)

type playerConfig struct {
	output      OutputKind
	controlRate int
	toneFreq    float64
	pads        []engine.LevelFunc
	tap         func([]float32)
}

// WithOutput selects the audio transport (default OutputEbiten).
func WithOutput(kind OutputKind) Option {
	return func(cfg *playerConfig) { cfg.output = kind }
}

// WithControlRate overrides the control tick rate in Hz (default 64).
func WithControlRate(hz int) Option {
	return func(cfg *playerConfig) { cfg.controlRate = hz }
}

// WithToneFreq overrides the tone deck frequency in Hz (default 440).
func WithToneFreq(hz float64) Option {
	return func(cfg *playerConfig) { cfg.toneFreq = hz }
}

// WithPads installs raw level readers, one per pad in slot order: true is
// idle, false is pressed. Readers are polled at the control rate and
// debounced before they trigger voices. They must not block.
func WithPads(pads ...func() bool) Option {
	return func(cfg *playerConfig) {
		for _, p := range pads {
			cfg.pads = append(cfg.pads, engine.LevelFunc(p))
		}
	}
}

// WithSampleTap installs a callback invoked with each rendered stereo
// buffer. It runs on the audio goroutine; keep work brief and non-blocking.
func WithSampleTap(tap func([]float32)) Option {
	return func(cfg *playerConfig) { cfg.tap = tap }
}

// State is the control-rate view of the engine, refreshed once per tick.
type State struct {
	Speed        float64
	Pitch        float64
	Linked       bool
	Source       string // "tone" or "sample"
	DeckOn       bool
	ActiveVoices int
}

// Player owns an engine and its audio transport. All control methods
// enqueue commands applied on the next control tick; none of them block.
type Player struct {
	mu      sync.Mutex
	engine  *engine.Engine
	kind    OutputKind
	rate    int
	out     audio.Output
	started bool
}

// NewPlayer builds a player over the embedded kit. All control state starts
// at the power-on defaults: unity speed and pitch, linked, tone source.
func NewPlayer(sampleRate int, opts ...Option) (*Player, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	cfg := playerConfig{output: OutputEbiten}
	for _, opt := range opts {
		opt(&cfg)
	}
	kit, err := store.DefaultKit()
	if err != nil {
		return nil, err
	}
	ecfg := engine.DefaultConfig()
	ecfg.SampleRate = sampleRate
	if cfg.controlRate > 0 {
		ecfg.ControlRate = cfg.controlRate
	}
	if cfg.toneFreq > 0 {
		ecfg.ToneFreq = cfg.toneFreq
	}
	eng, err := engine.New(ecfg, kit, cfg.pads)
	if err != nil {
		return nil, err
	}
	if cfg.tap != nil {
		eng.SetTap(cfg.tap)
	}
	return &Player{engine: eng, kind: cfg.output, rate: sampleRate}, nil
}

// Start opens the output device and begins playback.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	if p.out == nil && p.kind != OutputNone {
		var err error
		switch p.kind {
		case OutputOto:
			p.out, err = audio.NewOtoOutput(p.rate, p.engine)
		default:
			p.out, err = audio.NewEbitenOutput(p.rate, p.engine)
		}
		if err != nil {
			return err
		}
	}
	if p.out != nil {
		p.out.Play()
	}
	p.started = true
	return nil
}

// Pause halts the output device; engine state is left as-is.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.out != nil {
		p.out.Pause()
	}
	p.started = false
}

// Close releases the output device.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = false
	if p.out == nil {
		return nil
	}
	err := p.out.Close()
	p.out = nil
	return err
}

// Snapshot returns the engine state as of the most recent control tick.
func (p *Player) Snapshot() State {
	s := p.engine.Snapshot()
	return State{
		Speed:        s.Speed,
		Pitch:        s.Pitch,
		Linked:       s.Mode == control.Linked,
		Source:       s.Source.String(),
		DeckOn:       s.DeckOn,
		ActiveVoices: s.ActiveVoices,
	}
}

// Status formats the snapshot the way the command surface reports it.
func (p *Player) Status() string {
	s := p.Snapshot()
	link := "independent"
	if s.Linked {
		link = "linked"
	}
	deck := "stopped"
	if s.DeckOn {
		deck = s.Source
	}
	return fmt.Sprintf("speed %.2fx, pitch %.2fx (%s), deck %s, voices %d",
		s.Speed, s.Pitch, link, deck, s.ActiveVoices)
}

func (p *Player) SpeedUp()      { p.engine.Enqueue(engine.Command{Op: engine.OpSpeedUp}) }
func (p *Player) SpeedDown()    { p.engine.Enqueue(engine.Command{Op: engine.OpSpeedDown}) }
func (p *Player) PitchUp()      { p.engine.Enqueue(engine.Command{Op: engine.OpPitchUp}) }
func (p *Player) PitchDown()    { p.engine.Enqueue(engine.Command{Op: engine.OpPitchDown}) }
func (p *Player) ToggleLink()   { p.engine.Enqueue(engine.Command{Op: engine.OpToggleLink}) }
func (p *Player) ResetSpeed()   { p.engine.Enqueue(engine.Command{Op: engine.OpResetSpeed}) }
func (p *Player) ResetPitch()   { p.engine.Enqueue(engine.Command{Op: engine.OpResetPitch}) }
func (p *Player) SelectTone()   { p.engine.Enqueue(engine.Command{Op: engine.OpSelectTone}) }
func (p *Player) SelectSample() { p.engine.Enqueue(engine.Command{Op: engine.OpSelectSample}) }
func (p *Player) StartDeck()    { p.engine.Enqueue(engine.Command{Op: engine.OpDeckStart}) }
func (p *Player) StopDeck()     { p.engine.Enqueue(engine.Command{Op: engine.OpDeckStop}) }
func (p *Player) StopAll()      { p.engine.Enqueue(engine.Command{Op: engine.OpStopAll}) }

// TriggerPad starts pad voice i from the beginning, bypassing the hardware
// debounce path. Out-of-range indices are ignored.
func (p *Player) TriggerPad(i int) {
	p.engine.Enqueue(engine.Command{Op: engine.OpTriggerPad, Pad: i})
}

// HandleKey maps the single-character command set onto controller
// operations and returns a short action label. The second result is false
// for unmapped keys.
func (p *Player) HandleKey(ch byte) (string, bool) {
	switch ch {
	case '+':
		p.SpeedUp()
		return "increase speed", true
	case '-':
		p.SpeedDown()
		return "decrease speed", true
	case 'p', 'P':
		p.PitchUp()
		return "increase pitch (independent mode only)", true
	case 'o', 'O':
		p.PitchDown()
		return "decrease pitch (independent mode only)", true
	case 'i', 'I':
		p.ToggleLink()
		return "toggle speed/pitch link", true
	case '1':
		p.ResetSpeed()
		return "reset speed to 1.0x", true
	case '2':
		p.ResetPitch()
		return "reset pitch to 1.0x", true
	case 's', 'S':
		p.SelectTone()
		return "tone source", true
	case 'm', 'M':
		p.SelectSample()
		return "sample source", true
	default:
		return "", false
	}
}
