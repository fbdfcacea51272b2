// Package dispatch fans a single validated effect out to the encoders for
// each selected target. Failures are per target: one missing or unreadable
// device never stops the others.
package dispatch

import (
	"log/slog"
	"time"

	"github.com/awkit/aw-lights/internal/awelc"
	"github.com/awkit/aw-lights/internal/darfon"
	"github.com/awkit/aw-lights/internal/hid"
	"github.com/awkit/aw-lights/internal/lights"
)

// Result is the outcome for one target. Skipped marks a target the
// requested effect legitimately does not apply to (wave outside the
// keyboard); it is not a failure.
type Result struct {
	Target  lights.Target
	Skipped bool
	Err     error
}

// Failed reports whether any target actually failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Dispatcher applies effects to devices opened through HID. Sleep and
// Rebind default to the real implementations; tests replace them.
type Dispatcher struct {
	HID    hid.Manager
	Sleep  func(time.Duration)
	Rebind func(devicePath string) error
}

// Apply runs the effect on every member of the target set and returns one
// result per member, in Keyboard, Ring, Logos order.
func (d *Dispatcher) Apply(eff lights.Effect, targets lights.Target) []Result {
	var results []Result
	if targets.Has(lights.Keyboard) {
		results = append(results, d.applyKeyboard(eff))
	}
	if targets.Has(lights.Tron) {
		results = append(results, d.applyTron(eff, targets)...)
	}
	return results
}

func (d *Dispatcher) applyKeyboard(eff lights.Effect) Result {
	dev, err := d.HID.OpenVIDPID(darfon.VendorID, darfon.ProductID)
	if err != nil {
		return Result{Target: lights.Keyboard, Err: err}
	}
	defer dev.Close()

	kb := &darfon.Keyboard{Device: dev, Sleep: d.Sleep}
	switch eff.Kind {
	case lights.Static:
		err = kb.Static(eff.Colors[0])
	case lights.Breathe:
		err = kb.Breathe(eff.Colors)
	case lights.Morph:
		err = kb.Morph(eff.Colors)
	case lights.Spectrum:
		err = kb.Spectrum()
	case lights.Wave:
		err = kb.Wave()
	case lights.Pulse:
		err = kb.Pulse(eff.Colors[0])
	case lights.Off:
		err = kb.Off()
	}
	// Any feature-report write leaves the interface without keystroke
	// reporting until it is rebound, so rebind even after a partial
	// failure. A failed rebind is only a warning: lighting that did get
	// written stays applied.
	if rebindErr := d.rebind(dev.Path()); rebindErr != nil {
		slog.Warn("keyboard interface rebind failed, keystrokes may be unresponsive",
			"device", dev.Path(), "error", rebindErr)
	}
	return Result{Target: lights.Keyboard, Err: err}
}

func (d *Dispatcher) rebind(devicePath string) error {
	if d.Rebind != nil {
		return d.Rebind(devicePath)
	}
	return hid.Rebind(devicePath)
}

func (d *Dispatcher) applyTron(eff lights.Effect, targets lights.Target) []Result {
	var results []Result
	wantRing := targets.Has(lights.Ring)
	wantLogos := targets.Has(lights.Logos)

	// Wave exists only on the keyboard controller.
	if eff.Kind == lights.Wave {
		if wantRing {
			slog.Warn("wave is keyboard-only, skipping target", "target", lights.Ring)
			results = append(results, Result{Target: lights.Ring, Skipped: true})
		}
		if wantLogos {
			slog.Warn("wave is keyboard-only, skipping target", "target", lights.Logos)
			results = append(results, Result{Target: lights.Logos, Skipped: true})
		}
		return results
	}

	dev, err := d.HID.OpenVIDPID(awelc.VendorID, awelc.ProductID)
	if err != nil {
		if wantRing {
			results = append(results, Result{Target: lights.Ring, Err: err})
		}
		if wantLogos {
			results = append(results, Result{Target: lights.Logos, Err: err})
		}
		return results
	}
	defer dev.Close()

	ctl := &awelc.Controller{Device: dev, Sleep: d.Sleep}
	actions := tronActions(eff)
	if wantRing {
		results = append(results, Result{Target: lights.Ring, Err: ctl.SetRing(actions)})
	}
	if wantLogos {
		results = append(results, Result{Target: lights.Logos, Err: ctl.SetLogos(actions)})
	}
	return results
}

// tronActions maps an abstract effect onto AW-ELC action bytes.
func tronActions(eff lights.Effect) []byte {
	switch eff.Kind {
	case lights.Static:
		return awelc.StaticAction(eff.Colors[0])
	case lights.Breathe, lights.Morph:
		return awelc.MorphActions(eff.Colors)
	case lights.Spectrum:
		return awelc.MorphActions(lights.Rainbow())
	case lights.Pulse:
		return awelc.PulseAction(eff.Colors[0])
	case lights.Off:
		return awelc.StaticAction(lights.Color{})
	}
	return nil
}
