// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

// Package cc8488 implements the binary wire protocol spoken by CC8488-family
// USB-HID weather stations.
//
// The package is the pure data-level core: it builds command frames, parses
// and verifies response frames, and converts fixed-point payload fields into
// typed readings. It performs no I/O; transports and the request/response
// client live in pkg/station and pkg/link.
package cc8488

// Frame layout. All multi-byte integers on the wire are big-endian.
const (
	Marker0 = 0xFC
	Marker1 = 0x88

	// MarkerLen + opcode byte + 2 length bytes
	HeaderLen = 5
	// Trailing CRC-16
	ChecksumLen = 2

	MarkerLen = 2

	// MaxFrameLen matches one 64-byte HID input report.
	MaxFrameLen   = 64
	MaxPayloadLen = MaxFrameLen - HeaderLen - ChecksumLen
)

// Opcodes. Responses echo the opcode of the request.
const (
	OpQueryCurrent = 0x01
	OpQueryHistory = 0x02
	OpSetClock     = 0x08
)

// CRC-16-CCITT configuration
const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
)

// Payload sizes per opcode.
const (
	observationLen   = 19
	historyHeaderLen = 2
	clockPayloadLen  = 6
	clockAckLen      = 1
)

// History slot indices run 0 (most recent) through HistorySlots-1.
const HistorySlots = 4096

// ClockAccepted is the status byte of a successful SetClock acknowledgement.
const ClockAccepted = 0x00
