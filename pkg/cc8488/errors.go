// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cc8488

import "fmt"

// Frame-level errors. These are integrity failures on received bytes and are
// safe to retry: the bytes were bad, not the request.

// BadHeaderError indicates the buffer does not start with a plausible frame
// header (wrong marker bytes, unknown opcode, or an impossible length field).
type BadHeaderError struct {
	Offset int
	Got    byte
	Reason string
}

func (e *BadHeaderError) Error() string {
	return fmt.Sprintf("bad frame header at byte %d (0x%02X): %s", e.Offset, e.Got, e.Reason)
}

// TruncatedError indicates the buffer ends before the declared frame does.
// Recoverable: the caller may read more bytes and decode again.
type TruncatedError struct {
	Need int
	Have int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated frame: need %d bytes, have %d", e.Need, e.Have)
}

// ChecksumError indicates the recomputed CRC does not match the frame trailer.
// Nothing past the header may be trusted.
type ChecksumError struct {
	Want uint16
	Got  uint16
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: computed 0x%04X, frame carries 0x%04X", e.Want, e.Got)
}

// MalformedPayloadError indicates a verified frame whose payload does not
// decode into a reading. Field names the descriptor that failed.
type MalformedPayloadError struct {
	Opcode byte
	Field  string
	Err    error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed payload for opcode 0x%02X, field %q: %v", e.Opcode, e.Field, e.Err)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// Field-level errors. These indicate a layout or value problem, not line
// noise, and are never retried.

// OutOfRangeError indicates a field descriptor reaches past the end of the
// supplied payload slice.
type OutOfRangeError struct {
	Field string
	Need  int
	Have  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("field %q out of range: needs %d bytes, payload has %d", e.Field, e.Need, e.Have)
}

// ValueOverflowError indicates a value that does not fit the field's width
// and signedness.
type ValueOverflowError struct {
	Field string
	Value int64
}

func (e *ValueOverflowError) Error() string {
	return fmt.Sprintf("value %d overflows field %q", e.Value, e.Field)
}

// TimestampError indicates a packed BCD timestamp with an impossible calendar
// component. Impossible values are rejected, never clamped.
type TimestampError struct {
	What  string
	Value int
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp: %s = %d", e.What, e.Value)
}
