package drumpad

import "testing"

func TestDefaultsMatchPowerOnState(t *testing.T) {
	p, err := NewPlayer(16000, WithOutput(OutputNone))
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	s := p.Snapshot()
	if s.Speed != 1.0 || s.Pitch != 1.0 || !s.Linked {
		t.Fatalf("power-on state = %+v, want speed 1.0, pitch 1.0, linked", s)
	}
	if s.Source != "tone" || !s.DeckOn {
		t.Fatalf("power-on deck = %q on=%v, want tone running", s.Source, s.DeckOn)
	}
}

func TestHandleKeyMapping(t *testing.T) {
	p, err := NewPlayer(16000, WithOutput(OutputNone))
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	for _, ch := range []byte{'+', '-', 'p', 'P', 'o', 'O', 'i', 'I', '1', '2', 's', 'S', 'm', 'M'} {
		if _, ok := p.HandleKey(ch); !ok {
			t.Errorf("key %q not mapped", ch)
		}
	}
	for _, ch := range []byte{'q', 'x', '9', ' '} {
		if _, ok := p.HandleKey(ch); ok {
			t.Errorf("key %q unexpectedly mapped", ch)
		}
	}
}

func TestKeyCommandsReachController(t *testing.T) {
	p, err := NewPlayer(16000, WithOutput(OutputNone))
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	p.HandleKey('+')
	p.HandleKey('+')
	p.HandleKey('m')
	buf := make([]float32, 512)
	if err := p.Render(buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	s := p.Snapshot()
	if s.Speed < 1.19 || s.Speed > 1.21 {
		t.Errorf("speed = %v, want about 1.2", s.Speed)
	}
	if s.Pitch != s.Speed {
		t.Errorf("linked pitch = %v, speed = %v; want equal", s.Pitch, s.Speed)
	}
	if s.Source != "sample" {
		t.Errorf("source = %q, want sample", s.Source)
	}
}

func TestRenderRequiresOfflineOutput(t *testing.T) {
	p, err := NewPlayer(16000, WithOutput(OutputOto))
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	if err := p.Render(make([]float32, 64)); err == nil {
		t.Fatal("Render on a live-output player should be rejected")
	}
}

func TestPadTriggerViaFacade(t *testing.T) {
	p, err := NewPlayer(16000, WithOutput(OutputNone))
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	p.StopDeck()
	p.TriggerPad(PadKick)
	buf := make([]float32, 1024)
	if err := p.Render(buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	var loud bool
	for _, s := range buf {
		if s != 0 {
			loud = true
			break
		}
	}
	if !loud {
		t.Fatal("kick trigger rendered silence")
	}
}
