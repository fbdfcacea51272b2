package lights

import "strings"

// Target is a set of lighting surfaces. The keyboard is one controller
// family (Darfon); the ring and the logos share the other (AW-ELC).
type Target uint8

const (
	Keyboard Target = 1 << iota
	Ring
	Logos

	Tron = Ring | Logos
	All  = Keyboard | Ring | Logos
)

func (t Target) Has(x Target) bool {
	return t&x != 0
}

func (t Target) String() string {
	var parts []string
	if t.Has(Keyboard) {
		parts = append(parts, "keyboard")
	}
	if t.Has(Ring) {
		parts = append(parts, "ring")
	}
	if t.Has(Logos) {
		parts = append(parts, "logos")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// ResolveTargets turns the CLI flags into a target set. With no flags set
// everything is selected.
func ResolveTargets(keyboard, tron, ring, logos bool) Target {
	var t Target
	if keyboard {
		t |= Keyboard
	}
	if tron {
		t |= Tron
	}
	if ring {
		t |= Ring
	}
	if logos {
		t |= Logos
	}
	if t == 0 {
		t = All
	}
	return t
}
