package store

import "testing"

func TestNewRejectsShortTables(t *testing.T) {
	cases := []struct {
		name string
		data []int16
		ok   bool
	}{
		{"empty", nil, false},
		{"single", []int16{100}, false},
		{"pair", []int16{100, -100}, true},
	}
	for _, tc := range cases {
		_, err := New(tc.name, tc.data, 16000)
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s: expected construction error, got none", tc.name)
		}
	}
}

func TestNewRejectsBadRate(t *testing.T) {
	if _, err := New("x", []int16{1, 2}, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestDecodePCM(t *testing.T) {
	raw := []byte{0x01, 0x00, 0xFF, 0xFF, 0x00, 0x80}
	got, err := DecodePCM(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []int16{1, -1, -32768}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("sample[%d] = %d, want %d", i, got[i], w)
		}
	}
	if _, err := DecodePCM([]byte{0x01}); err == nil {
		t.Fatal("expected error for odd byte count")
	}
}

func TestSineTableShape(t *testing.T) {
	s, err := SineTable("tone", 2048, 0.3, 16000)
	if err != nil {
		t.Fatalf("sine table: %v", err)
	}
	if !s.Loop {
		t.Fatal("tone table should loop")
	}
	if s.Data[0] != 0 {
		t.Errorf("cell 0 = %d, want 0", s.Data[0])
	}
	// Quarter cycle should be near the amplitude peak.
	peak := s.Data[2048/4]
	if peak < 9700 || peak > 9900 {
		t.Errorf("quarter-cycle peak = %d, want about 0.3 * 32767", peak)
	}
	// Second half mirrors the first with opposite sign.
	if s.Data[2048/4*3] != -peak {
		t.Errorf("three-quarter cell = %d, want %d", s.Data[2048/4*3], -peak)
	}
}

func TestDefaultKitLoads(t *testing.T) {
	kit, err := DefaultKit()
	if err != nil {
		t.Fatalf("default kit: %v", err)
	}
	if len(kit.Pads) != 4 {
		t.Fatalf("expected 4 pad sounds, got %d", len(kit.Pads))
	}
	for _, s := range kit.Pads {
		if s.Loop {
			t.Errorf("pad %q should be one-shot", s.Name)
		}
		if s.Len() < 2 {
			t.Errorf("pad %q too short: %d", s.Name, s.Len())
		}
		if s.Rate != KitRate {
			t.Errorf("pad %q rate = %d, want %d", s.Name, s.Rate, KitRate)
		}
	}
	if !kit.Ambient.Loop || !kit.Tone.Loop {
		t.Fatal("deck sources should loop")
	}
}
