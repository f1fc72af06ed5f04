// Package engine is the audio callback driver: a cooperative scheduler that
// interleaves a high-rate audio task (one output frame per sample) with a
// low-rate control task (command handling and pad polling). Both tasks run
// on the audio goroutine; neither blocks, allocates, or loops without bound.
package engine

import (
	"fmt"
	"sync"

	"github.com/padworks/drumpad-go/internal/control"
	"github.com/padworks/drumpad-go/internal/resample"
	"github.com/padworks/drumpad-go/internal/store"
	"github.com/padworks/drumpad-go/internal/trigger"
	"github.com/padworks/drumpad-go/internal/voice"
)

// Source selects what the deck plays: the generated tone table or the
// looping ambience sample.
type Source int

const (
	SourceTone Source = iota
	SourceSample
)

func (s Source) String() string {
	if s == SourceTone {
		return "tone"
	}
	return "sample"
}

// Op is a control operation. Commands are applied on the control tick so
// the audio path never observes a half-applied update.
type Op int

const (
	OpSpeedUp Op = iota
	OpSpeedDown
	OpPitchUp
	OpPitchDown
	OpToggleLink
	OpResetSpeed
	OpResetPitch
	OpSelectTone
	OpSelectSample
	OpDeckStart
	OpDeckStop
	OpTriggerPad
	OpStopAll
)

// Command pairs an operation with its pad argument (OpTriggerPad only).
type Command struct {
	Op  Op
	Pad int
}

// LevelFunc reads one raw digital input level: true is idle (high), false
// is pressed. It is called once per control tick and must not block.
type LevelFunc func() bool

// Config carries the fixed engine rates. The defaults mirror the observed
// hardware: 16 kHz audio, 64 Hz control, 512-sample blocks.
type Config struct {
	SampleRate     int
	ControlRate    int
	BlockSize      int
	DebounceWindow uint32  // milliseconds
	ToneFreq       float64 // Hz
}

func DefaultConfig() Config {
	return Config{
		SampleRate:     store.KitRate,
		ControlRate:    64,
		BlockSize:      512,
		DebounceWindow: trigger.DefaultWindow,
		ToneFreq:       440,
	}
}

// Snapshot is the control-rate view of engine state, published once per
// tick for displays and status lines.
type Snapshot struct {
	Speed        float64
	Pitch        float64
	Mode         control.LinkMode
	Source       Source
	DeckOn       bool
	ActiveVoices int
}

// Engine owns the voice bank, the deck, the controller and the debouncer.
// All mutable state is written from Process's goroutine only; the command
// channel and the published snapshot are the only cross-goroutine surfaces.
type Engine struct {
	cfg  Config
	ctrl *control.Controller
	bank *voice.Bank
	deb  *trigger.Debouncer
	pads []LevelFunc

	tone    *store.Sample
	ambient *store.Sample
	source  Source
	deckOn  bool
	tp      *resample.TwoPass
	deckBuf []int16

	cmds           chan Command
	ticks          uint64
	countdown      int
	samplesPerTick int

	tap func([]float32)

	snapMu sync.Mutex
	snap   Snapshot
}

// New builds an engine around a kit. pads supplies one raw level reader per
// bank slot; nil entries (or a short slice) leave those pads hardware-less,
// reachable only through OpTriggerPad.
func New(cfg Config, kit *store.Kit, pads []LevelFunc) (*Engine, error) {
	if cfg.SampleRate <= 0 || cfg.ControlRate <= 0 || cfg.BlockSize <= 0 {
		return nil, fmt.Errorf("engine: invalid config %+v", cfg)
	}
	if cfg.ControlRate > cfg.SampleRate {
		return nil, fmt.Errorf("engine: control rate %d exceeds sample rate %d", cfg.ControlRate, cfg.SampleRate)
	}
	if kit == nil || kit.Tone == nil || kit.Ambient == nil {
		return nil, fmt.Errorf("engine: incomplete kit")
	}
	bank, err := voice.NewBank(kit.Pads)
	if err != nil {
		return nil, err
	}
	padFns := make([]LevelFunc, bank.Len())
	copy(padFns, pads)
	e := &Engine{
		cfg:            cfg,
		ctrl:           control.New(),
		bank:           bank,
		deb:            trigger.New(bank.Len(), cfg.DebounceWindow),
		pads:           padFns,
		tone:           kit.Tone,
		ambient:        kit.Ambient,
		source:         SourceTone,
		deckOn:         true,
		tp:             resample.NewTwoPass(cfg.BlockSize),
		deckBuf:        make([]int16, cfg.BlockSize),
		cmds:           make(chan Command, 32),
		samplesPerTick: cfg.SampleRate / cfg.ControlRate,
	}
	e.publishSnapshot()
	return e, nil
}

// Enqueue hands a command to the control tick. It never blocks; when the
// queue is full the command is dropped and false returned.
func (e *Engine) Enqueue(c Command) bool {
	select {
	case e.cmds <- c:
		return true
	default:
		return false
	}
}

// SetTap installs a callback invoked with each rendered stereo buffer. It
// runs on the audio goroutine; keep work brief and non-blocking. Install
// before rendering starts.
func (e *Engine) SetTap(tap func([]float32)) { e.tap = tap }

// Bank exposes the voice bank for offline tests and tooling.
func (e *Engine) Bank() *voice.Bank { return e.bank }

// Snapshot returns the state published at the most recent control tick.
func (e *Engine) Snapshot() Snapshot {
	e.snapMu.Lock()
	defer e.snapMu.Unlock()
	return e.snap
}

// Process renders interleaved stereo float32 frames (the mono engine output
// duplicated per channel). Rendering is chunked so the control task fires
// every samplesPerTick samples, interleaved with audio on one goroutine.
func (e *Engine) Process(dst []float32) {
	frames := len(dst) / 2
	off := 0
	for off < frames {
		if e.countdown <= 0 {
			e.controlTick()
			e.countdown = e.samplesPerTick
		}
		n := frames - off
		if n > e.countdown {
			n = e.countdown
		}
		if n > e.cfg.BlockSize {
			n = e.cfg.BlockSize
		}
		e.renderBlock(dst[off*2:(off+n)*2], n)
		off += n
		e.countdown -= n
	}
	if e.tap != nil {
		e.tap(dst)
	}
}

// renderBlock produces n mono samples into out as stereo pairs: the deck
// block first, then the per-sample bank sum, one hard clip over the total.
func (e *Engine) renderBlock(out []float32, n int) {
	deck := e.deckBuf[:n]
	if e.deckOn {
		speed := e.ctrl.Speed() * e.deckBaseRate()
		pitch := 1.0
		if e.ctrl.Mode() == control.Independent && e.ctrl.Pitch() != 1.0 {
			pitch = e.ctrl.Pitch()
		}
		e.tp.Process(deck, e.deckSource().Data, speed, pitch)
	} else {
		for i := range deck {
			deck[i] = 0
		}
	}

	rate := e.ctrl.Speed()
	for i := 0; i < n; i++ {
		s := voice.Clip(e.bank.Sum(rate) + int32(deck[i]))
		f := float32(s) / 32768
		out[i*2] = f
		out[i*2+1] = f
	}
}

// deckBaseRate converts the deck source to a unity-speed cursor rate. The
// tone table is one cycle, so its rate carries the oscillator frequency;
// the ambience sample plays 1:1.
func (e *Engine) deckBaseRate() float64 {
	if e.source == SourceTone {
		return e.cfg.ToneFreq * float64(e.tone.Len()) / float64(e.cfg.SampleRate)
	}
	return 1.0
}

func (e *Engine) deckSource() *store.Sample {
	if e.source == SourceTone {
		return e.tone
	}
	return e.ambient
}

// controlTick is the low-rate task: drain queued commands, poll the pads
// through the debouncer, start voices for accepted presses, publish the
// snapshot. It is the only writer of controller and deck mode state.
func (e *Engine) controlTick() {
	e.ticks++
	now := uint32(e.ticks * 1000 / uint64(e.cfg.ControlRate))

drain:
	for {
		select {
		case c := <-e.cmds:
			e.apply(c)
		default:
			break drain
		}
	}

	for i, read := range e.pads {
		if read == nil {
			continue
		}
		e.deb.Poll(i, read(), now)
		if e.deb.TakeTrigger(i) {
			e.bank.Trigger(i)
		}
	}

	e.publishSnapshot()
}

func (e *Engine) apply(c Command) {
	switch c.Op {
	case OpSpeedUp:
		e.ctrl.AdjustSpeed(control.Step)
	case OpSpeedDown:
		e.ctrl.AdjustSpeed(-control.Step)
	case OpPitchUp:
		e.ctrl.AdjustPitch(control.Step)
	case OpPitchDown:
		e.ctrl.AdjustPitch(-control.Step)
	case OpToggleLink:
		e.ctrl.ToggleLink()
	case OpResetSpeed:
		e.ctrl.ResetSpeed()
	case OpResetPitch:
		e.ctrl.ResetPitch()
	case OpSelectTone:
		e.selectSource(SourceTone)
	case OpSelectSample:
		e.selectSource(SourceSample)
	case OpDeckStart:
		e.deckOn = true
	case OpDeckStop:
		e.deckOn = false
	case OpTriggerPad:
		e.bank.Trigger(c.Pad)
	case OpStopAll:
		e.bank.StopAll()
	}
}

// selectSource rewinds the deck when the source changes, matching the
// original firmware's position reset on mode switch.
func (e *Engine) selectSource(s Source) {
	if e.source == s {
		return
	}
	e.source = s
	e.tp.Reset()
}

func (e *Engine) publishSnapshot() {
	snap := Snapshot{
		Speed:        e.ctrl.Speed(),
		Pitch:        e.ctrl.Pitch(),
		Mode:         e.ctrl.Mode(),
		Source:       e.source,
		DeckOn:       e.deckOn,
		ActiveVoices: e.bank.ActiveCount(),
	}
	e.snapMu.Lock()
	e.snap = snap
	e.snapMu.Unlock()
}
