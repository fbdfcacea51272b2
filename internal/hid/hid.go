// Package hid opens raw HID device nodes by vendor:product identity and
// delivers reports to them. It owns no protocol knowledge: the encoder
// packages decide what bytes go in a report, this package only decides how
// a report reaches the device (feature-report control path vs. output-report
// stream write).
package hid

import (
	"errors"
	"strings"
)

var (
	// ErrDeviceNotFound means no hidraw node matches the requested identity.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrPermissionDenied means the node exists but cannot be opened;
	// usually a missing udev rule.
	ErrPermissionDenied = errors.New("permission denied")
)

// Device represents an opened HID device capable of report delivery.
type Device interface {
	// SendFeature delivers data as a feature report with the given report
	// ID via the device-control path (HID SET_REPORT).
	SendFeature(reportID byte, data []byte) error
	// SendOutput delivers data as an output report with the given report
	// ID via a direct stream write.
	SendOutput(reportID byte, data []byte) error
	// Path returns the device node path, e.g. /dev/hidraw3.
	Path() string
	Close() error
}

// Info describes an enumerated HID device.
type Info struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Product      string
	Manufacturer string
}

// Manager enumerates and opens HID devices.
type Manager interface {
	List() ([]Info, error)
	OpenVIDPID(vendorID, productID uint16) (Device, error)
}

// NewManager returns the usbhid-backed HID manager.
func NewManager() Manager {
	return &usbManager{}
}

// EncodeReportToString renders report bytes as dash-separated hex for
// debug logging.
func EncodeReportToString(b []byte) string {
	const digits = "0123456789abcdef"
	var builder strings.Builder
	for i, c := range b {
		if i > 0 {
			builder.WriteByte('-')
		}
		builder.WriteByte(digits[c>>4])
		builder.WriteByte(digits[c&0x0F])
	}
	return builder.String()
}
