package hid

import (
	"errors"
	"fmt"
	"io/fs"

	usbhid "rafaelmartins.com/p/usbhid"
)

type usbManager struct{}

func (m *usbManager) List() ([]Info, error) {
	devs, err := usbhid.Enumerate(nil)
	if err != nil {
		return nil, err
	}
	out := make([]Info, 0, len(devs))
	for _, d := range devs {
		out = append(out, Info{
			Path:         d.Path(),
			VendorID:     d.VendorId(),
			ProductID:    d.ProductId(),
			Product:      d.Product(),
			Manufacturer: d.Manufacturer(),
		})
	}
	return out, nil
}

func (m *usbManager) OpenVIDPID(vendorID, productID uint16) (Device, error) {
	d, err := usbhid.Get(func(dev *usbhid.Device) bool {
		return dev.VendorId() == vendorID && dev.ProductId() == productID
	}, true, false)
	if err != nil {
		return nil, classifyOpenError(vendorID, productID, err)
	}
	return &usbDevice{d}, nil
}

// classifyOpenError sorts an open failure into the not-found/no-permission
// taxonomy. A USB bus probe distinguishes absent hardware from hardware
// that is attached but exposes no accessible hidraw node.
func classifyOpenError(vendorID, productID uint16, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %04x:%04x: %v (add a udev rule granting access to the hidraw node)",
			ErrPermissionDenied, vendorID, productID, err)
	}
	if OnBus(vendorID, productID) {
		return fmt.Errorf("%w: %04x:%04x: device is on the USB bus but exposes no accessible hidraw node: %v",
			ErrDeviceNotFound, vendorID, productID, err)
	}
	return fmt.Errorf("%w: %04x:%04x: %v", ErrDeviceNotFound, vendorID, productID, err)
}

type usbDevice struct{ d *usbhid.Device }

func (d *usbDevice) SendFeature(reportID byte, data []byte) error {
	return d.d.SetFeatureReport(reportID, data)
}

func (d *usbDevice) SendOutput(reportID byte, data []byte) error {
	return d.d.SetOutputReport(reportID, data)
}

func (d *usbDevice) Path() string { return d.d.Path() }

func (d *usbDevice) Close() error { return d.d.Close() }
