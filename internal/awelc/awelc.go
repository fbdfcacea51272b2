// Package awelc drives the AW-ELC lighting controller (APIv4) behind the
// tron ring and the power-button/AlienHead logos. Commands are 33-byte
// output reports tagged with report ID 0x03.
//
// Two sub-protocols share the handle and differ only in command byte:
// user animations (0x21) are transient and address the ring zones, power
// animations (0x22) are persisted by the firmware per power state and
// address the logo zones. Getting the addressing byte wrong makes the
// firmware ignore the write silently.
package awelc

import (
	"log/slog"
	"time"

	"github.com/awkit/aw-lights/internal/hid"
	"github.com/awkit/aw-lights/internal/lights"
)

const (
	VendorID  uint16 = 0x187C
	ProductID uint16 = 0x0550
)

const (
	reportID  = 0x03
	reportLen = 33 // including report ID

	cmdUserAnimation  = 0x21
	cmdPowerAnimation = 0x22
	cmdSelectZones    = 0x23
	cmdAddAction      = 0x24

	// Sub-commands shared by 0x21 and 0x22.
	animNew        = 0x01
	animSave       = 0x02
	animPlay       = 0x03
	animRemove     = 0x04
	animSetDefault = 0x05

	// Animation IDs: user animations use the broadcast ID, power
	// animations are keyed to one power state each.
	animIDUser = 0xFF
)

// Action codes and modes for the 0x24 add-action command.
const (
	actionColor = 0x00
	actionPulse = 0x01
	actionMorph = 0x02

	modeColor = 0xD0
	modeMorph = 0xCF
	modePulse = 0xDC
)

// RingZoneCount is the number of independently addressable ring segments.
const RingZoneCount = 10

// RingZones returns the zone addresses of the 10 ring segments, in physical
// order.
func RingZones() []byte {
	z := make([]byte, RingZoneCount)
	for i := range z {
		z[i] = byte(10 + i)
	}
	return z
}

// LogoZones returns the zone addresses of the power button and the
// AlienHead logo.
func LogoZones() []byte {
	return []byte{0x00, 0x01}
}

// PowerStates returns the animation IDs the firmware replays at each
// power-state transition (boot, sleep, shutdown and the running states).
func PowerStates() []byte {
	return []byte{0x5B, 0x5C, 0x5D, 0x5E, 0x5F, 0x60}
}

// StaticAction encodes a solid-color action.
func StaticAction(c lights.Color) []byte {
	return []byte{actionColor, 0x07, modeColor, 0x00, 0xFA, c.R, c.G, c.B}
}

// MorphActions encodes a cycle through up to three colors. Breathe, morph
// and spectrum all run on this action on the AW-ELC.
func MorphActions(colors []lights.Color) []byte {
	if len(colors) > 3 {
		colors = colors[:3]
	}
	data := make([]byte, 0, 8*len(colors))
	for _, c := range colors {
		data = append(data, actionMorph, 0x07, modeMorph, 0x00, 0x64, c.R, c.G, c.B)
	}
	return data
}

// PulseAction encodes a single-color pulse.
func PulseAction(c lights.Color) []byte {
	return []byte{actionPulse, 0x07, modePulse, 0x00, 0x64, c.R, c.G, c.B}
}

// Controller encodes animations for one opened AW-ELC device. Sleep
// defaults to time.Sleep; tests replace it.
type Controller struct {
	Device hid.Device
	Sleep  func(time.Duration)
}

func (c *Controller) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}

// send pads data into a full-length output report. The controller needs a
// short gap between reports or it drops them.
func (c *Controller) send(data []byte) error {
	payload := make([]byte, reportLen-1)
	copy(payload, data)
	slog.Debug("awelc output report", "data", hid.EncodeReportToString(data))
	if err := c.Device.SendOutput(reportID, payload); err != nil {
		return err
	}
	c.sleep(20 * time.Millisecond)
	return nil
}

func (c *Controller) animation(command, sub, id byte) error {
	return c.send([]byte{command, 0x00, sub, 0x00, id})
}

func (c *Controller) selectZones(zones []byte) error {
	data := append([]byte{cmdSelectZones, 0x01, 0x00, byte(len(zones))}, zones...)
	return c.send(data)
}

func (c *Controller) addActions(actions []byte) error {
	return c.send(append([]byte{cmdAddAction}, actions...))
}

// SetRingZones writes a transient user animation running actions on the
// given ring zones. It is lost on any power-state change and must be
// reapplied after boot or resume.
func (c *Controller) SetRingZones(zones []byte, actions []byte) error {
	if err := c.animation(cmdUserAnimation, animRemove, animIDUser); err != nil {
		return err
	}
	if err := c.animation(cmdUserAnimation, animNew, animIDUser); err != nil {
		return err
	}
	if err := c.selectZones(zones); err != nil {
		return err
	}
	if err := c.addActions(actions); err != nil {
		return err
	}
	return c.animation(cmdUserAnimation, animPlay, animIDUser)
}

// SetRing runs actions uniformly on all 10 ring zones.
func (c *Controller) SetRing(actions []byte) error {
	return c.SetRingZones(RingZones(), actions)
}

// SetRingColors gives every ring segment its own solid color.
func (c *Controller) SetRingColors(colors [RingZoneCount]lights.Color) error {
	if err := c.animation(cmdUserAnimation, animRemove, animIDUser); err != nil {
		return err
	}
	if err := c.animation(cmdUserAnimation, animNew, animIDUser); err != nil {
		return err
	}
	for i, zone := range RingZones() {
		if err := c.selectZones([]byte{zone}); err != nil {
			return err
		}
		if err := c.addActions(StaticAction(colors[i])); err != nil {
			return err
		}
	}
	return c.animation(cmdUserAnimation, animPlay, animIDUser)
}

// SetLogos writes actions for the logo zones as power animations, once per
// power state. The firmware persists these and replays them at each
// relevant transition, so logos never need boot-time reapplication.
func (c *Controller) SetLogos(actions []byte) error {
	// Flush any pending user animation before touching power animations.
	if err := c.animation(cmdUserAnimation, animPlay, animIDUser); err != nil {
		return err
	}
	c.sleep(50 * time.Millisecond)
	for _, state := range PowerStates() {
		if err := c.animation(cmdPowerAnimation, animRemove, state); err != nil {
			return err
		}
		if err := c.animation(cmdPowerAnimation, animNew, state); err != nil {
			return err
		}
		if err := c.selectZones(LogoZones()); err != nil {
			return err
		}
		if err := c.addActions(actions); err != nil {
			return err
		}
		if err := c.animation(cmdPowerAnimation, animSave, state); err != nil {
			return err
		}
	}
	return c.animation(cmdUserAnimation, animSetDefault, animIDUser)
}
