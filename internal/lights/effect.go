package lights

import (
	"errors"
	"fmt"
)

var (
	ErrArgCount       = errors.New("wrong number of colors")
	ErrUnknownCommand = errors.New("unknown command")
)

// Kind identifies an abstract lighting effect. The per-device byte encodings
// live in the encoder packages; this is the device-independent tag.
type Kind int

const (
	Static Kind = iota
	Breathe
	Morph
	Spectrum
	Wave
	Pulse
	Off
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Breathe:
		return "breathe"
	case Morph:
		return "morph"
	case Spectrum:
		return "spectrum"
	case Wave:
		return "wave"
	case Pulse:
		return "pulse"
	case Off:
		return "off"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Effect is a validated effect descriptor: a kind plus the colors it runs
// with. Color-count bounds are enforced by BuildEffect, so an Effect in hand
// is always safe to encode.
type Effect struct {
	Kind   Kind
	Colors []Color
}

// colorBounds gives the allowed color count per command.
var colorBounds = map[string]struct {
	kind     Kind
	min, max int
}{
	"static":   {Static, 1, 1},
	"breathe":  {Breathe, 1, 3},
	"morph":    {Morph, 2, 3},
	"spectrum": {Spectrum, 0, 0},
	"wave":     {Wave, 0, 0},
	"pulse":    {Pulse, 1, 1},
	"off":      {Off, 0, 0},
}

// BuildEffect validates the color count for the named command and returns
// the effect descriptor. No device is touched on failure.
func BuildEffect(command string, colors []Color) (Effect, error) {
	b, ok := colorBounds[command]
	if !ok {
		return Effect{}, fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	if len(colors) < b.min || len(colors) > b.max {
		if b.min == b.max {
			return Effect{}, fmt.Errorf("%w: %s takes %d, got %d", ErrArgCount, command, b.min, len(colors))
		}
		return Effect{}, fmt.Errorf("%w: %s takes %d-%d, got %d", ErrArgCount, command, b.min, b.max, len(colors))
	}
	return Effect{Kind: b.kind, Colors: colors}, nil
}
