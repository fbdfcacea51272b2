package hid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const usbhidDriver = "/sys/bus/usb/drivers/usbhid"

// Rebind unbinds and rebinds the usbhid driver for the USB interface behind
// the given hidraw node. The Darfon keyboard controller stops reporting
// keystrokes after a feature-report write until its interface is rebound.
func Rebind(devicePath string) error {
	node := filepath.Base(devicePath)
	uevent := filepath.Join("/sys/class/hidraw", node, "device", "uevent")
	b, err := os.ReadFile(uevent)
	if err != nil {
		return fmt.Errorf("read %s: %w", uevent, err)
	}
	phys := PhysFromUevent(string(b))
	if phys == "" {
		return fmt.Errorf("no HID_PHYS entry in %s", uevent)
	}
	if err := os.WriteFile(filepath.Join(usbhidDriver, "unbind"), []byte(phys), 0200); err != nil {
		return fmt.Errorf("unbind %s: %w", phys, err)
	}
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(usbhidDriver, "bind"), []byte(phys), 0200); err != nil {
		return fmt.Errorf("bind %s: %w", phys, err)
	}
	return nil
}

// PhysFromUevent extracts the usbhid bind name from a hidraw uevent blob.
// HID_PHYS looks like "usb-0000:00:14.0-5/input1"; the driver wants only
// the part before the slash.
func PhysFromUevent(uevent string) string {
	for _, line := range strings.Split(uevent, "\n") {
		if phys, ok := strings.CutPrefix(line, "HID_PHYS="); ok {
			phys = strings.TrimSpace(phys)
			if i := strings.IndexByte(phys, '/'); i >= 0 {
				phys = phys[:i]
			}
			return phys
		}
	}
	return ""
}
