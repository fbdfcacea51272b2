// Package darfon drives the Darfon keyboard backlight controller (APIv5).
// Every command is a 64-byte feature report tagged with report ID 0xCC.
// The command bytes, effect codes and tempos below were captured from the
// controller; treat them as an opaque table.
package darfon

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/awkit/aw-lights/internal/hid"
	"github.com/awkit/aw-lights/internal/lights"
)

const (
	VendorID  uint16 = 0x0D62
	ProductID uint16 = 0xBABC
)

const (
	reportID  = 0xCC
	reportLen = 64 // including report ID

	keyCount  = 0x88 // per-key table covers key indices 0..0x87
	batchSize = 15   // keys per 0x8C report; 3 + 15*4 fills the payload

	cmdGlobalEffect = 0x80
	cmdCommit       = 0x8B
	cmdSetKeys      = 0x8C
	cmdKeysDone     = 0x13
	cmdReset        = 0x94
)

// Effect-type codes and tempos for the 0x80 global-effect command.
const (
	effectBreathe = 0x02
	effectWave    = 0x03
	effectPulse   = 0x08

	tempoSlow = 0x07
	tempoFast = 0x05
)

// Keyboard encodes effects for one opened keyboard device. Sleep defaults
// to time.Sleep; tests replace it to run the settle delays instantly.
type Keyboard struct {
	Device hid.Device
	Sleep  func(time.Duration)
}

func (k *Keyboard) sleep(d time.Duration) {
	if k.Sleep != nil {
		k.Sleep(d)
		return
	}
	time.Sleep(d)
}

// send pads data into a fresh full-length feature report. Each write fully
// replaces the previous report, so stale bytes never linger.
func (k *Keyboard) send(data []byte) error {
	if len(data) > reportLen-1 {
		return fmt.Errorf("darfon: report data too long: %d", len(data))
	}
	payload := make([]byte, reportLen-1)
	copy(payload, data)
	slog.Debug("darfon feature report", "data", hid.EncodeReportToString(data))
	return k.Device.SendFeature(reportID, payload)
}

func (k *Keyboard) reset() error {
	if err := k.send([]byte{cmdReset}); err != nil {
		return err
	}
	k.sleep(50 * time.Millisecond)
	return nil
}

// disableEffect stops any running global effect so a per-key table or a new
// effect takes over cleanly.
func (k *Keyboard) disableEffect() error {
	if err := k.send([]byte{cmdGlobalEffect, 0x01, 0xFE, 0x00, 0x00, 0x01, 0x01, 0x01}); err != nil {
		return err
	}
	k.sleep(50 * time.Millisecond)
	return nil
}

func (k *Keyboard) commit() error {
	return k.send([]byte{cmdCommit, 0x01, 0xFF})
}

// setKeyTable writes the full per-key color table in batches of 15 keys.
// Keys present in m get their mapped color, everything else gets base.
func (k *Keyboard) setKeyTable(m map[int]lights.Color, base lights.Color) error {
	for i := 0; i < keyCount; i += batchSize {
		end := i + batchSize
		if end > keyCount {
			end = keyCount
		}
		data := []byte{cmdSetKeys, 0x02, 0x00}
		for key := i; key < end; key++ {
			c, ok := m[key]
			if !ok {
				c = base
			}
			data = append(data, byte(key+1), c.R, c.G, c.B)
		}
		if err := k.send(data); err != nil {
			return err
		}
		k.sleep(10 * time.Millisecond)
	}
	if err := k.send([]byte{cmdSetKeys, cmdKeysDone}); err != nil {
		return err
	}
	k.sleep(10 * time.Millisecond)
	return nil
}

// globalEffect writes the short effect buffer: type, tempo, fixed timing
// constants, color count, then all three color slots (unused slots zero).
func (k *Keyboard) globalEffect(effectType, tempo byte, colors []lights.Color) error {
	data := []byte{cmdGlobalEffect, effectType, tempo, 0x00, 0x00, 0x01, 0x01, 0x01, byte(len(colors) - 1)}
	for i := 0; i < 3; i++ {
		var c lights.Color
		if i < len(colors) {
			c = colors[i]
		}
		data = append(data, c.R, c.G, c.B)
	}
	if err := k.send(data); err != nil {
		return err
	}
	k.sleep(50 * time.Millisecond)
	return nil
}

// applyEffect runs the standard reset/disable/effect/commit sequence.
func (k *Keyboard) applyEffect(effectType, tempo byte, colors []lights.Color) error {
	if err := k.reset(); err != nil {
		return err
	}
	if err := k.disableEffect(); err != nil {
		return err
	}
	if err := k.globalEffect(effectType, tempo, colors); err != nil {
		return err
	}
	return k.commit()
}

// SetKeys applies a per-key color map; unset keys fall back to base.
func (k *Keyboard) SetKeys(m map[int]lights.Color, base lights.Color) error {
	if err := k.reset(); err != nil {
		return err
	}
	if err := k.disableEffect(); err != nil {
		return err
	}
	if err := k.setKeyTable(m, base); err != nil {
		return err
	}
	return k.commit()
}

// Static fills the whole key table with one color.
func (k *Keyboard) Static(c lights.Color) error {
	return k.SetKeys(nil, c)
}

func (k *Keyboard) Breathe(colors []lights.Color) error {
	return k.applyEffect(effectBreathe, tempoSlow, colors)
}

func (k *Keyboard) Morph(colors []lights.Color) error {
	return k.applyEffect(effectBreathe, tempoFast, colors)
}

// Spectrum breathes through the full rainbow.
func (k *Keyboard) Spectrum() error {
	return k.applyEffect(effectBreathe, tempoFast, lights.Rainbow())
}

func (k *Keyboard) Wave() error {
	return k.applyEffect(effectWave, tempoFast, lights.Rainbow())
}

func (k *Keyboard) Pulse(c lights.Color) error {
	return k.applyEffect(effectPulse, tempoSlow, []lights.Color{c})
}

// Off is a static fill with the zero color.
func (k *Keyboard) Off() error {
	return k.Static(lights.Color{})
}
