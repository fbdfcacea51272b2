package hid

import "fmt"

// WriteKind tags which delivery mechanism a recorded write used.
type WriteKind int

const (
	FeatureReport WriteKind = iota
	OutputReport
)

// Write is one recorded report delivery.
type Write struct {
	Kind     WriteKind
	ReportID byte
	Data     []byte
}

// MockDevice records report writes for encoder and dispatcher tests.
type MockDevice struct {
	Writes   []Write
	FailWith error // returned from every send when set
	Closed   bool
}

func (m *MockDevice) send(kind WriteKind, reportID byte, data []byte) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.Writes = append(m.Writes, Write{Kind: kind, ReportID: reportID, Data: cp})
	return nil
}

func (m *MockDevice) SendFeature(reportID byte, data []byte) error {
	return m.send(FeatureReport, reportID, data)
}

func (m *MockDevice) SendOutput(reportID byte, data []byte) error {
	return m.send(OutputReport, reportID, data)
}

func (m *MockDevice) Path() string { return "/dev/hidraw-mock" }

func (m *MockDevice) Close() error {
	m.Closed = true
	return nil
}

// MockManager hands out preregistered devices by identity.
type MockManager struct {
	Devices map[uint32]Device // key: VID<<16 | PID
	Errs    map[uint32]error
}

func NewMockManager() *MockManager {
	return &MockManager{
		Devices: make(map[uint32]Device),
		Errs:    make(map[uint32]error),
	}
}

func key(vendorID, productID uint16) uint32 {
	return uint32(vendorID)<<16 | uint32(productID)
}

// Add registers a mock device for the given identity and returns it.
func (m *MockManager) Add(vendorID, productID uint16) *MockDevice {
	d := &MockDevice{}
	m.Devices[key(vendorID, productID)] = d
	return d
}

// Fail makes opens of the given identity return err.
func (m *MockManager) Fail(vendorID, productID uint16, err error) {
	m.Errs[key(vendorID, productID)] = err
}

func (m *MockManager) List() ([]Info, error) { return nil, nil }

func (m *MockManager) OpenVIDPID(vendorID, productID uint16) (Device, error) {
	if err, ok := m.Errs[key(vendorID, productID)]; ok {
		return nil, err
	}
	if d, ok := m.Devices[key(vendorID, productID)]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %04x:%04x", ErrDeviceNotFound, vendorID, productID)
}
