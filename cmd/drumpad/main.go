// Command drumpad is a terminal drum pad: z/x/c/v play the kit, the
// single-character control keys adjust deck speed and pitch.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	drumpad "github.com/padworks/drumpad-go"
)

// padLatch turns momentary keypresses into level reads: a press holds the
// simulated pin low long enough to survive the debounce window, the way a
// finger on a real button would.
type padLatch struct {
	mu    sync.Mutex
	until [drumpad.NumPads]time.Time
}

const pressHold = 60 * time.Millisecond

func (l *padLatch) press(i int) {
	l.mu.Lock()
	l.until[i] = time.Now().Add(pressHold)
	l.mu.Unlock()
}

// level reports the raw pin state for pad i: true is idle, false pressed.
func (l *padLatch) level(i int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return time.Now().After(l.until[i])
}

var padKeys = map[byte]int{
	'z': drumpad.PadKick,
	'x': drumpad.PadSnare,
	'c': drumpad.PadHat,
	'v': drumpad.PadClap,
}

func main() {
	var (
		sampleRate = flag.Int("sample-rate", 16000, "output sample rate")
		source     = flag.String("source", "tone", "initial deck source: tone|sample|off")
		toneFreq   = flag.Float64("tone-freq", 440, "tone deck frequency in Hz")
	)
	flag.Parse()

	latch := &padLatch{}
	pads := make([]func() bool, drumpad.NumPads)
	for i := range pads {
		i := i
		pads[i] = func() bool { return latch.level(i) }
	}

	pl, err := drumpad.NewPlayer(*sampleRate,
		drumpad.WithOutput(drumpad.OutputOto),
		drumpad.WithToneFreq(*toneFreq),
		drumpad.WithPads(pads...),
	)
	if err != nil {
		log.Fatal(err)
	}
	switch *source {
	case "tone":
	case "sample":
		pl.SelectSample()
	case "off":
		pl.StopDeck()
	default:
		log.Fatalf("invalid -source %q (expected tone|sample|off)", *source)
	}
	if err := pl.Start(); err != nil {
		log.Fatal(err)
	}
	defer pl.Close()

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("raw mode: %v", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	printHelp()

	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return
		}
		ch := buf[0]
		switch {
		case ch == 'q' || ch == 'Q' || ch == 3: // q or ctrl-c
			fmt.Print("bye\r\n")
			return
		case ch == '?':
			printHelp()
		case ch == ' ':
			fmt.Printf("%s\r\n", pl.Status())
		default:
			if pad, ok := padKeys[ch]; ok {
				latch.press(pad)
				continue
			}
			if label, ok := pl.HandleKey(ch); ok {
				fmt.Printf("%s\r\n", label)
			}
		}
	}
}

func printHelp() {
	fmt.Print("drumpad keys:\r\n" +
		"  z x c v  play kick / snare / hat / clap\r\n" +
		"  + -      speed up / down by 0.1x\r\n" +
		"  p o      pitch up / down by 0.1x (independent mode)\r\n" +
		"  i        toggle speed/pitch link\r\n" +
		"  1 2      reset speed / pitch to 1.0x\r\n" +
		"  s m      deck source: tone / sample\r\n" +
		"  space    show status, ? help, q quit\r\n")
}
