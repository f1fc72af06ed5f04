package voice

import (
	"math"
	"testing"

	"github.com/padworks/drumpad-go/internal/store"
)

func mustSample(t *testing.T, name string, data []int16, loop bool) *store.Sample {
	t.Helper()
	var s *store.Sample
	var err error
	if loop {
		s, err = store.NewLoop(name, data, 16000)
	} else {
		s, err = store.New(name, data, 16000)
	}
	if err != nil {
		t.Fatalf("sample %s: %v", name, err)
	}
	return s
}

func constSample(t *testing.T, name string, value int16, n int, loop bool) *store.Sample {
	data := make([]int16, n)
	for i := range data {
		data[i] = value
	}
	return mustSample(t, name, data, loop)
}

func TestMixSilentWhenNothingPlays(t *testing.T) {
	b, err := NewBank([]*store.Sample{constSample(t, "a", 12000, 16, false)})
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	for i := 0; i < 10; i++ {
		if got := b.Mix(1.0); got != Silence {
			t.Fatalf("mix with no playing voices = %d, want %d", got, Silence)
		}
	}
}

func TestMixClipsFullScaleVoices(t *testing.T) {
	var samples []*store.Sample
	for i := 0; i < DefaultVoices; i++ {
		samples = append(samples, constSample(t, "max", math.MaxInt16, 32, false))
	}
	b, err := NewBank(samples)
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	for i := 0; i < b.Len(); i++ {
		b.Trigger(i)
	}
	if got := b.Mix(1.0); got != math.MaxInt16 {
		t.Fatalf("4 full-scale voices mixed to %d, want clip at %d", got, math.MaxInt16)
	}

	for i := 0; i < DefaultVoices; i++ {
		samples[i] = constSample(t, "min", math.MinInt16, 32, false)
	}
	b, _ = NewBank(samples)
	for i := 0; i < b.Len(); i++ {
		b.Trigger(i)
	}
	if got := b.Mix(1.0); got != math.MinInt16 {
		t.Fatalf("4 negative full-scale voices mixed to %d, want clip at %d", got, math.MinInt16)
	}
}

func TestOppositeVoicesCancel(t *testing.T) {
	b, err := NewBank([]*store.Sample{
		constSample(t, "pos", 100, 10, false),
		constSample(t, "neg", -100, 10, false),
	})
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	b.Trigger(0)
	b.Trigger(1)
	if got := b.Mix(1.0); got != 0 {
		t.Fatalf("opposite full-scale pair mixed to %d, want 0", got)
	}
}

func TestRetriggerRestartsFromZero(t *testing.T) {
	b, _ := NewBank([]*store.Sample{constSample(t, "a", 50, 100, false)})
	b.Trigger(0)
	for i := 0; i < 30; i++ {
		b.Mix(1.0)
	}
	if b.Voice(0).Pos() != 30 {
		t.Fatalf("pos = %v, want 30", b.Voice(0).Pos())
	}
	b.Trigger(0)
	if b.Voice(0).Pos() != 0 {
		t.Fatalf("retrigger pos = %v, want 0", b.Voice(0).Pos())
	}
	if !b.Voice(0).Playing() {
		t.Fatal("retriggered voice should be playing")
	}
}

func TestOneShotStopsAtEndOfData(t *testing.T) {
	b, _ := NewBank([]*store.Sample{constSample(t, "a", 50, 100, false)})
	b.Trigger(0)
	// Rate 2.0 over length 100: the crossing advance happens on call 50.
	for i := 0; i < 49; i++ {
		b.Mix(2.0)
	}
	if !b.Voice(0).Playing() {
		t.Fatal("voice stopped early")
	}
	got := b.Mix(2.0)
	if got != 50 {
		t.Fatalf("final call output = %d, want 50 (stop must not affect the sample just produced)", got)
	}
	if b.Voice(0).Playing() {
		t.Fatal("voice should stop once the cursor crosses end-of-data")
	}
	if b.Mix(2.0) != Silence {
		t.Fatal("stopped voice still contributes to the mix")
	}
}

func TestLoopingVoiceWraps(t *testing.T) {
	b, _ := NewBank([]*store.Sample{constSample(t, "a", 50, 100, true)})
	b.Trigger(0)
	for i := 0; i < 50; i++ {
		b.Mix(2.0)
	}
	if !b.Voice(0).Playing() {
		t.Fatal("looping voice must not stop at end-of-data")
	}
	if b.Voice(0).Pos() != 0 {
		t.Fatalf("pos after one full wrap = %v, want 0", b.Voice(0).Pos())
	}
	for i := 0; i < 10; i++ {
		b.Mix(2.0)
	}
	if b.Voice(0).Pos() != 20 {
		t.Fatalf("pos after 60 total calls = %v, want 20", b.Voice(0).Pos())
	}
}

func TestBankConstruction(t *testing.T) {
	if _, err := NewBank(nil); err == nil {
		t.Fatal("empty bank should be rejected")
	}
	if _, err := NewBank([]*store.Sample{nil}); err == nil {
		t.Fatal("nil sample slot should be rejected")
	}
}
