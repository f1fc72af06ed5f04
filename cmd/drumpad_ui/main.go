// Command drumpad_ui is an on-screen drum pad. Held keys are the raw pad
// levels: the engine's debouncer sees them exactly as it would see a
// hardware button.
package main

import (
	"fmt"
	"image/color"
	"log"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	drumpad "github.com/padworks/drumpad-go"
)

const (
	windowW    = 640
	windowH    = 400
	sampleRate = 16000

	padSize = 110
	padGap  = 24
	padTop  = 150
)

var (
	bgColor      = color.RGBA{28, 28, 34, 255}
	padColor     = color.RGBA{70, 70, 84, 255}
	padHitColor  = color.RGBA{214, 120, 48, 255}
	barBackColor = color.RGBA{48, 48, 58, 255}
	barFillColor = color.RGBA{96, 150, 220, 255}
)

var padLabels = [drumpad.NumPads]string{"KICK", "SNARE", "HAT", "CLAP"}

var padKeys = [drumpad.NumPads]ebiten.Key{
	ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyV,
}

var commandKeys = map[ebiten.Key]byte{
	ebiten.KeyEqual:      '+', // unshifted plus
	ebiten.KeyKPAdd:      '+',
	ebiten.KeyMinus:      '-',
	ebiten.KeyKPSubtract: '-',
	ebiten.KeyP:          'p',
	ebiten.KeyO:          'o',
	ebiten.KeyI:          'i',
	ebiten.Key1:          '1',
	ebiten.Key2:          '2',
	ebiten.KeyS:          's',
	ebiten.KeyM:          'm',
}

type game struct {
	pl     *drumpad.Player
	levels [drumpad.NumPads]atomic.Bool // true = pressed
	pixel  *ebiten.Image
	notice string
}

func newGame() (*game, error) {
	g := &game{pixel: ebiten.NewImage(1, 1)}
	g.pixel.Fill(color.White)

	pads := make([]func() bool, drumpad.NumPads)
	for i := range pads {
		i := i
		// Idle-high convention: pressed keys read low.
		pads[i] = func() bool { return !g.levels[i].Load() }
	}
	pl, err := drumpad.NewPlayer(sampleRate, drumpad.WithPads(pads...))
	if err != nil {
		return nil, err
	}
	g.pl = pl
	return g, nil
}

func (g *game) Update() error {
	// Input state is only valid on the game goroutine; latch it for the
	// audio-side level readers.
	for i, key := range padKeys {
		g.levels[i].Store(ebiten.IsKeyPressed(key))
	}
	for key, ch := range commandKeys {
		if inpututil.IsKeyJustPressed(key) {
			if label, ok := g.pl.HandleKey(ch); ok {
				g.notice = label
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.notice = g.pl.Status()
	}
	// Playback starts on the first input, once the browser/context rules
	// allow it.
	return g.pl.Start()
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	s := g.pl.Snapshot()

	ebitenutil.DebugPrintAt(screen, "DRUMPAD  z/x/c/v pads  +/- speed  p/o pitch  i link  1/2 reset  s/m source  space status", 12, 10)

	g.drawBar(screen, 12, 40, "speed", s.Speed, 0.1, 4.0)
	g.drawBar(screen, 12, 70, "pitch", s.Pitch, 0.5, 2.0)

	link := "independent"
	if s.Linked {
		link = "linked"
	}
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("mode: %s   deck: %s (on=%v)   voices: %d", link, s.Source, s.DeckOn, s.ActiveVoices),
		12, 100)
	if g.notice != "" {
		ebitenutil.DebugPrintAt(screen, g.notice, 12, 120)
	}

	for i := 0; i < drumpad.NumPads; i++ {
		x := 12 + i*(padSize+padGap)
		c := padColor
		if g.levels[i].Load() {
			c = padHitColor
		}
		g.fillRect(screen, x, padTop, padSize, padSize, c)
		ebitenutil.DebugPrintAt(screen, padLabels[i], x+8, padTop+padSize-22)
	}
}

func (g *game) drawBar(screen *ebiten.Image, x, y int, label string, v, lo, hi float64) {
	const w, h = 300, 12
	g.fillRect(screen, x+60, y, w, h, barBackColor)
	frac := (v - lo) / (hi - lo)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	g.fillRect(screen, x+60, y, int(float64(w)*frac), h, barFillColor)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %.2fx", label, v), x, y-2)
}

func (g *game) fillRect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(g.pixel, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowW, windowH
}

func main() {
	g, err := newGame()
	if err != nil {
		log.Fatal(err)
	}
	defer g.pl.Close()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowTitle("drumpad")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
