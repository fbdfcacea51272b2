package darfon

import (
	"bytes"
	"testing"
	"time"

	"github.com/awkit/aw-lights/internal/hid"
	"github.com/awkit/aw-lights/internal/lights"
)

func testKeyboard(dev *hid.MockDevice) *Keyboard {
	return &Keyboard{Device: dev, Sleep: func(time.Duration) {}}
}

func checkReportShape(t *testing.T, writes []hid.Write) {
	t.Helper()
	for i, w := range writes {
		if w.Kind != hid.FeatureReport {
			t.Errorf("write %d: kind = %v, want feature report", i, w.Kind)
		}
		if w.ReportID != 0xCC {
			t.Errorf("write %d: report ID = %#x, want 0xCC", i, w.ReportID)
		}
		if len(w.Data) != 63 {
			t.Errorf("write %d: payload length = %d, want 63", i, len(w.Data))
		}
	}
}

func TestStaticFillsEveryKey(t *testing.T) {
	dev := &hid.MockDevice{}
	kb := testKeyboard(dev)
	if err := kb.Static(lights.Color{R: 0xFF, G: 0x14, B: 0x93}); err != nil {
		t.Fatalf("Static: %v", err)
	}
	checkReportShape(t, dev.Writes)

	// reset + disable + 10 key batches + table done + commit
	if len(dev.Writes) != 14 {
		t.Fatalf("writes = %d, want 14", len(dev.Writes))
	}
	if dev.Writes[0].Data[0] != 0x94 {
		t.Errorf("first write = %#x, want reset 0x94", dev.Writes[0].Data[0])
	}
	wantDisable := []byte{0x80, 0x01, 0xFE, 0x00, 0x00, 0x01, 0x01, 0x01}
	if !bytes.Equal(dev.Writes[1].Data[:8], wantDisable) {
		t.Errorf("disable write = % x, want % x", dev.Writes[1].Data[:8], wantDisable)
	}

	// Collect the per-key assignments out of the 0x8C batches.
	seen := make(map[byte][3]byte)
	for _, w := range dev.Writes[2:12] {
		if w.Data[0] != 0x8C || w.Data[1] != 0x02 || w.Data[2] != 0x00 {
			t.Fatalf("key batch header = % x", w.Data[:3])
		}
		for i := 3; i+3 < len(w.Data); i += 4 {
			key := w.Data[i]
			if key == 0 {
				break // padding
			}
			if _, dup := seen[key]; dup {
				t.Errorf("key %d assigned twice", key)
			}
			seen[key] = [3]byte{w.Data[i+1], w.Data[i+2], w.Data[i+3]}
		}
	}
	if len(seen) != 0x88 {
		t.Fatalf("assigned %d keys, want %d", len(seen), 0x88)
	}
	for key, rgb := range seen {
		if rgb != [3]byte{0xFF, 0x14, 0x93} {
			t.Errorf("key %d = % x, want ff 14 93", key, rgb)
		}
	}

	if dev.Writes[12].Data[0] != 0x8C || dev.Writes[12].Data[1] != 0x13 {
		t.Errorf("table-done write = % x", dev.Writes[12].Data[:2])
	}
	wantCommit := []byte{0x8B, 0x01, 0xFF}
	if !bytes.Equal(dev.Writes[13].Data[:3], wantCommit) {
		t.Errorf("commit write = % x, want % x", dev.Writes[13].Data[:3], wantCommit)
	}
}

func TestSetKeysBaseFallback(t *testing.T) {
	dev := &hid.MockDevice{}
	kb := testKeyboard(dev)
	accent := lights.Color{R: 0x12, G: 0x34, B: 0x56}
	base := lights.Color{B: 0xFF}
	if err := kb.SetKeys(map[int]lights.Color{0: accent, 0x20: accent}, base); err != nil {
		t.Fatalf("SetKeys: %v", err)
	}

	var accented, based int
	for _, w := range dev.Writes {
		if w.Data[0] != 0x8C || w.Data[1] != 0x02 {
			continue
		}
		for i := 3; i+3 < len(w.Data); i += 4 {
			if w.Data[i] == 0 {
				break
			}
			rgb := [3]byte{w.Data[i+1], w.Data[i+2], w.Data[i+3]}
			switch rgb {
			case [3]byte{0x12, 0x34, 0x56}:
				accented++
			case [3]byte{0x00, 0x00, 0xFF}:
				based++
			default:
				t.Errorf("key %d has unexpected color % x", w.Data[i], rgb)
			}
		}
	}
	if accented != 2 {
		t.Errorf("accent keys = %d, want 2", accented)
	}
	if based != 0x88-2 {
		t.Errorf("base keys = %d, want %d", based, 0x88-2)
	}
}

func TestGlobalEffects(t *testing.T) {
	red := lights.Color{R: 0xFF}
	green := lights.Color{G: 0xFF}
	blue := lights.Color{B: 0xFF}

	tests := []struct {
		name string
		run  func(*Keyboard) error
		want []byte // expected 0x80 effect buffer prefix
	}{
		{
			name: "breathe three colors",
			run:  func(k *Keyboard) error { return k.Breathe([]lights.Color{red, green, blue}) },
			want: []byte{0x80, 0x02, 0x07, 0x00, 0x00, 0x01, 0x01, 0x01, 0x02,
				0xFF, 0x00, 0x00, 0x00, 0xFF, 0x00, 0x00, 0x00, 0xFF},
		},
		{
			name: "breathe one color pads slots",
			run:  func(k *Keyboard) error { return k.Breathe([]lights.Color{red}) },
			want: []byte{0x80, 0x02, 0x07, 0x00, 0x00, 0x01, 0x01, 0x01, 0x00,
				0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "morph two colors",
			run:  func(k *Keyboard) error { return k.Morph([]lights.Color{red, blue}) },
			want: []byte{0x80, 0x02, 0x05, 0x00, 0x00, 0x01, 0x01, 0x01, 0x01,
				0xFF, 0x00, 0x00, 0x00, 0x00, 0xFF, 0x00, 0x00, 0x00},
		},
		{
			name: "spectrum is rainbow breathe",
			run:  func(k *Keyboard) error { return k.Spectrum() },
			want: []byte{0x80, 0x02, 0x05, 0x00, 0x00, 0x01, 0x01, 0x01, 0x02,
				0xFF, 0x00, 0x00, 0x00, 0xFF, 0x00, 0x00, 0x00, 0xFF},
		},
		{
			name: "wave uses its own effect code",
			run:  func(k *Keyboard) error { return k.Wave() },
			want: []byte{0x80, 0x03, 0x05, 0x00, 0x00, 0x01, 0x01, 0x01, 0x02,
				0xFF, 0x00, 0x00, 0x00, 0xFF, 0x00, 0x00, 0x00, 0xFF},
		},
		{
			name: "pulse",
			run:  func(k *Keyboard) error { return k.Pulse(lights.Color{R: 0xFF, G: 0x14, B: 0x93}) },
			want: []byte{0x80, 0x08, 0x07, 0x00, 0x00, 0x01, 0x01, 0x01, 0x00,
				0xFF, 0x14, 0x93, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := &hid.MockDevice{}
			if err := tt.run(testKeyboard(dev)); err != nil {
				t.Fatalf("%v", err)
			}
			checkReportShape(t, dev.Writes)
			// reset + disable + effect + commit
			if len(dev.Writes) != 4 {
				t.Fatalf("writes = %d, want 4", len(dev.Writes))
			}
			got := dev.Writes[2].Data[:len(tt.want)]
			if !bytes.Equal(got, tt.want) {
				t.Errorf("effect buffer = % x, want % x", got, tt.want)
			}
			for _, b := range dev.Writes[2].Data[len(tt.want):] {
				if b != 0 {
					t.Errorf("effect buffer not zero padded after color slots")
					break
				}
			}
		})
	}
}

func TestOffIsStaticZero(t *testing.T) {
	dev := &hid.MockDevice{}
	if err := testKeyboard(dev).Off(); err != nil {
		t.Fatalf("Off: %v", err)
	}
	for _, w := range dev.Writes {
		if w.Data[0] != 0x8C || w.Data[1] != 0x02 {
			continue
		}
		for i := 3; i+3 < len(w.Data); i += 4 {
			if w.Data[i] == 0 {
				break
			}
			if w.Data[i+1] != 0 || w.Data[i+2] != 0 || w.Data[i+3] != 0 {
				t.Fatalf("key %d not zeroed: % x", w.Data[i], w.Data[i+1:i+4])
			}
		}
	}
}
