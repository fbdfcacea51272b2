package hid

import (
	"github.com/karalabe/usb"
)

// OnBus reports whether a device with the given identity is attached to the
// USB bus at all, independent of whether a hidraw node for it can be opened.
// Enumeration works without open permissions, so this separates "plug it in"
// from "fix the udev rule" in error reports.
func OnBus(vendorID, productID uint16) bool {
	infos, err := usb.Enumerate(vendorID, productID)
	if err != nil {
		return false
	}
	return len(infos) > 0
}
