// Command convertwav converts WAV files into the raw s16le mono .pcm
// assets the engine embeds: decode, downmix to mono, linear-resample to
// the kit rate. Run it at build time; the engine never parses WAV headers.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/padworks/drumpad-go/internal/resample"
	"github.com/padworks/drumpad-go/internal/store"
)

func main() {
	var (
		outDir  = flag.String("out", ".", "output directory for .pcm files")
		outRate = flag.Int("rate", store.KitRate, "target sample rate")
	)
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal("usage: convertwav [-out dir] [-rate hz] file.wav ...")
	}
	for _, path := range flag.Args() {
		if err := convert(path, *outDir, *outRate); err != nil {
			log.Fatalf("%s: %v", path, err)
		}
	}
}

func convert(path, outDir string, outRate int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return err
	}
	mono := downmix(buf)
	if len(mono) < 2 {
		return fmt.Errorf("too short: %d samples", len(mono))
	}
	inRate := int(dec.SampleRate)
	out := resampleTo(mono, inRate, outRate)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dst := filepath.Join(outDir, name+".pcm")
	if err := writePCM(dst, out); err != nil {
		return err
	}
	fmt.Printf("%s: %d samples @ %d Hz -> %s (%d samples @ %d Hz)\n",
		path, len(mono), inRate, dst, len(out), outRate)
	return nil
}

// downmix averages channels into mono int16, rescaling from the source bit
// depth.
func downmix(buf *goaudio.IntBuffer) []int16 {
	ch := buf.Format.NumChannels
	if ch < 1 {
		ch = 1
	}
	shift := 0
	if buf.SourceBitDepth > 0 {
		shift = buf.SourceBitDepth - 16 // positive narrows, negative widens
	}
	frames := len(buf.Data) / ch
	out := make([]int16, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < ch; c++ {
			sum += buf.Data[i*ch+c]
		}
		v := sum / ch
		if shift > 0 {
			v >>= shift
		} else if shift < 0 {
			v <<= -shift
		}
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		out[i] = int16(v)
	}
	return out
}

// resampleTo converts mono PCM between rates with the engine's own linear
// interpolator, stopping before the read cursor crosses end-of-data.
func resampleTo(src []int16, inRate, outRate int) []int16 {
	if inRate == outRate {
		return src
	}
	rate := float64(inRate) / float64(outRate)
	out := make([]int16, 0, int(float64(len(src))/rate)+1)
	pos := 0.0
	for {
		s, next := resample.Advance(src, pos, rate)
		out = append(out, s)
		if resample.Crossed(pos, rate, len(src)) {
			break
		}
		pos = next
	}
	return out
}

func writePCM(path string, data []int16) error {
	raw := make([]byte, len(data)*2)
	for i, s := range data {
		raw[i*2] = byte(s)
		raw[i*2+1] = byte(uint16(s) >> 8)
	}
	return os.WriteFile(path, raw, 0o644)
}
