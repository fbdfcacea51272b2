// Package lights holds the color, effect and target model shared by the
// keyboard and ring/logo encoders. It is pure: nothing here touches a device.
package lights

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidColor = errors.New("invalid color")

// Color is an 8-bit-per-channel RGB triple.
type Color struct {
	R, G, B uint8
}

// ParseColor parses a 6-hex-digit string such as "FF1493". A leading "#"
// is accepted and stripped.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("%w: %q: want exactly 6 hex digits", ErrInvalidColor, s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	return Color{R: b[0], G: b[1], B: b[2]}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Rainbow is the three-color cycle both controller families use for the
// spectrum and wave effects.
func Rainbow() []Color {
	return []Color{
		{R: 0xFF},
		{G: 0xFF},
		{B: 0xFF},
	}
}
