// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package link

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// SerialConn wraps a serial port. Some station heads expose the console over
// an RS-232 adapter instead of USB HID.
type SerialConn struct {
	port serial.Port
}

// OpenSerial opens a serial port at the given baud rate, 8N1.
func OpenSerial(portName string, baudRate int) (*SerialConn, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %v", portName, err)
	}

	return &SerialConn{port: port}, nil
}

func (s *SerialConn) Read(p []byte) (int, error) {
	return s.port.Read(p)
}

func (s *SerialConn) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

// SetReadTimeout bounds each Read; an expired read returns 0 bytes.
func (s *SerialConn) SetReadTimeout(d time.Duration) error {
	return s.port.SetReadTimeout(d)
}

func (s *SerialConn) Close() error {
	return s.port.Close()
}
