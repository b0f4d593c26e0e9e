// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cmd

import (
	"fmt"
	"time"

	"github.com/kestrelwx/stationctl/pkg/link"
	"github.com/kestrelwx/stationctl/pkg/station"
)

// OpenConnection opens the station transport selected by the root flags:
// WebSocket bridge, serial port, or (default) the first attached USB console.
func OpenConnection() (link.Conn, string, error) {
	if wsURL != "" {
		// WebSocket mode
		password := ""
		if wsUsername != "" {
			var err error
			password, err = link.GetPassword()
			if err != nil {
				return nil, "", err
			}
		}

		conn, err := link.OpenWebSocket(wsURL, wsUsername, password, wsNoSSLVerify)
		if err != nil {
			return nil, "", err
		}

		return conn, fmt.Sprintf("WebSocket: %s", wsURL), nil
	}

	if portName != "" {
		// Serial mode
		conn, err := link.OpenSerial(portName, baudRate)
		if err != nil {
			return nil, "", err
		}

		return conn, fmt.Sprintf("Serial: %s @ %d baud", portName, baudRate), nil
	}

	// USB HID mode
	conn, err := link.OpenStation()
	if err != nil {
		return nil, "", err
	}

	return conn, fmt.Sprintf("USB HID: VID 0x%04X PID 0x%04X", link.VendorID, link.ProductID), nil
}

// newClient wraps an open transport in a station client configured by the
// root flags.
func newClient(conn link.Conn) *station.Client {
	return station.New(conn,
		station.WithTimeout(time.Duration(exchangeTimeout)*time.Second),
		station.WithRetries(exchangeRetries),
	)
}
