// awlctl drives the RGB lighting of an Alienware x15 R1 over raw hidraw
// nodes: the Darfon keyboard controller via feature reports and the AW-ELC
// ring/logo controller via output reports.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/awkit/aw-lights/internal/awelc"
	"github.com/awkit/aw-lights/internal/darfon"
	"github.com/awkit/aw-lights/internal/dispatch"
	"github.com/awkit/aw-lights/internal/hid"
	"github.com/awkit/aw-lights/internal/lights"
)

const usage = `usage: awlctl <command> [colors...] [target flags]

Commands:
  static RRGGBB             Set all lights to a solid color
  breathe RRGGBB [RRGGBB]   Breathing effect with 1-3 colors
  morph RRGGBB RRGGBB ...   Morph/cycle between 2-3 colors
  spectrum                  Rainbow spectrum cycle
  wave                      Rainbow wave (keyboard only)
  pulse RRGGBB              Pulsing single color
  off                       Turn all lights off
  list                      List HID devices present

Targets (optional, default: all):
  --keyboard   Only keyboard
  --tron       Only tron (ring + logos)
  --ring       Only ring
  --logos      Only logos

Examples:
  awlctl static FF1493
  awlctl breathe FF0000 00FF00 0000FF
  awlctl spectrum --keyboard
  awlctl off
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		fmt.Print(usage)
		return 0
	}

	var keyboard, tron, ring, logos bool
	var rest []string
	for _, a := range args {
		switch a {
		case "--keyboard":
			keyboard = true
		case "--tron":
			tron = true
		case "--ring":
			ring = true
		case "--logos":
			logos = true
		default:
			if strings.HasPrefix(a, "--") {
				fmt.Fprintf(os.Stderr, "awlctl: unknown flag %s\n", a)
				return 2
			}
			rest = append(rest, a)
		}
	}

	if len(rest) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
	command := strings.ToLower(rest[0])
	if command == "list" {
		return list()
	}

	colors, err := parseColors(rest[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "awlctl: %v\n", err)
		return 2
	}
	colors = defaultColors(command, colors)

	eff, err := lights.BuildEffect(command, colors)
	if err != nil {
		fmt.Fprintf(os.Stderr, "awlctl: %v\n", err)
		if errors.Is(err, lights.ErrUnknownCommand) {
			fmt.Fprint(os.Stderr, usage)
		}
		return 2
	}
	targets := lights.ResolveTargets(keyboard, tron, ring, logos)

	d := dispatch.Dispatcher{HID: hid.NewManager()}
	results := d.Apply(eff, targets)
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(os.Stderr, "awlctl: %s: %v\n", r.Target, r.Err)
		case r.Skipped:
			// Already warned by the dispatcher.
		default:
			fmt.Printf("%s: %s", r.Target, eff.Kind)
			if len(eff.Colors) > 0 {
				fmt.Printf(" %v", eff.Colors)
			}
			fmt.Println()
		}
	}
	if dispatch.Failed(results) {
		return 1
	}
	return 0
}

func parseColors(args []string) ([]lights.Color, error) {
	var colors []lights.Color
	for _, a := range args {
		c, err := lights.ParseColor(a)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// defaultColors fills in the stock colors when none are given: deep pink
// for the single-color effects, the rainbow for the multi-color ones.
func defaultColors(command string, colors []lights.Color) []lights.Color {
	if len(colors) > 0 {
		return colors
	}
	switch command {
	case "static", "pulse":
		return []lights.Color{{R: 0xFF, G: 0x14, B: 0x93}}
	case "breathe", "morph":
		return lights.Rainbow()
	}
	return colors
}

func list() int {
	mgr := hid.NewManager()
	infos, err := mgr.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "awlctl: list: %v\n", err)
		return 1
	}
	for _, info := range infos {
		note := ""
		switch {
		case info.VendorID == darfon.VendorID && info.ProductID == darfon.ProductID:
			note = "  <- keyboard controller (APIv5)"
		case info.VendorID == awelc.VendorID && info.ProductID == awelc.ProductID:
			note = "  <- ring/logo controller (APIv4)"
		}
		fmt.Printf("%04x:%04x  %-12s %s %s%s\n",
			info.VendorID, info.ProductID, info.Path, info.Manufacturer, info.Product, note)
	}
	if !hid.OnBus(darfon.VendorID, darfon.ProductID) && !hid.OnBus(awelc.VendorID, awelc.ProductID) {
		fmt.Fprintln(os.Stderr, "awlctl: no known lighting controller on the USB bus")
	}
	return 0
}
