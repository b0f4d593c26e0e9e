// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package link

import (
	"fmt"
	"time"

	"github.com/karalabe/hid"
)

// CC8488 console USB identifiers.
const (
	VendorID  = 0x1941
	ProductID = 0x8021
)

// hidReportLen is the station's input/output report size.
const hidReportLen = 64

// HIDConn wraps the station's native USB HID interface. Output reports carry
// report ID 0x00; input reports are 64 bytes, padded past the logical frame.
type HIDConn struct {
	dev     hid.Device
	timeout time.Duration
}

// OpenStation opens the first attached CC8488 console.
func OpenStation() (*HIDConn, error) {
	return OpenHID(VendorID, ProductID)
}

// OpenHID opens the first HID device matching the given vendor and product.
func OpenHID(vid, pid uint16) (*HIDConn, error) {
	if !hid.Supported() {
		return nil, fmt.Errorf("USB HID is not supported on this platform")
	}

	infos, err := hid.Enumerate(vid, pid)
	if err != nil {
		return nil, fmt.Errorf("HID enumeration failed: %v", err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("no station found (VID 0x%04X PID 0x%04X)", vid, pid)
	}

	dev, err := infos[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open station %s: %v", infos[0].Path, err)
	}

	return &HIDConn{dev: dev}, nil
}

func (h *HIDConn) Read(p []byte) (int, error) {
	if h.timeout > 0 {
		ms := int(h.timeout / time.Millisecond)
		if ms < 1 {
			ms = 1
		}
		return h.dev.ReadTimeout(p, ms)
	}
	return h.dev.Read(p)
}

// Write sends p as one output report, prefixed with report ID 0x00.
func (h *HIDConn) Write(p []byte) (int, error) {
	if len(p) > hidReportLen {
		return 0, fmt.Errorf("command of %d bytes exceeds %d-byte report", len(p), hidReportLen)
	}

	report := make([]byte, 1+hidReportLen)
	copy(report[1:], p)

	if _, err := h.dev.Write(report); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetReadTimeout bounds each Read; an expired read returns 0 bytes.
func (h *HIDConn) SetReadTimeout(d time.Duration) error {
	h.timeout = d
	return nil
}

func (h *HIDConn) Close() error {
	return h.dev.Close()
}
