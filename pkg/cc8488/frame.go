// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cc8488

import "encoding/binary"

// Frame is one complete, verified protocol message. Payload aliases the
// buffer that was decoded, so a Frame is only valid as long as that buffer
// is; Clone copies it out when the frame must outlive the read buffer.
type Frame struct {
	Opcode   byte
	Payload  []byte
	Checksum uint16
}

// Len returns the full wire length of the frame including header and CRC.
func (f Frame) Len() int {
	return HeaderLen + len(f.Payload) + ChecksumLen
}

// Clone returns a frame whose payload no longer aliases the decode buffer.
func (f Frame) Clone() Frame {
	p := make([]byte, len(f.Payload))
	copy(p, f.Payload)
	return Frame{Opcode: f.Opcode, Payload: p, Checksum: f.Checksum}
}

// AppendFrame appends one complete frame (marker, opcode, length, payload,
// CRC) to dst and returns the extended slice. Payload length is bounded by
// the callers: commands and readings never exceed MaxPayloadLen, so this is
// a pure function with no failure path. Oversized payloads are a programming
// error and panic.
func AppendFrame(dst []byte, opcode byte, payload []byte) []byte {
	if len(payload) > MaxPayloadLen {
		panic("cc8488: frame payload exceeds MaxPayloadLen")
	}

	start := len(dst)
	dst = append(dst, Marker0, Marker1, opcode)
	dst = binary.BigEndian.AppendUint16(dst, uint16(len(payload)))
	dst = append(dst, payload...)
	crc := Checksum(dst[start:])
	return binary.BigEndian.AppendUint16(dst, crc)
}

// EncodeFrame is the allocating convenience form of AppendFrame.
func EncodeFrame(opcode byte, payload []byte) []byte {
	return AppendFrame(make([]byte, 0, HeaderLen+len(payload)+ChecksumLen), opcode, payload)
}

// DecodeFrame parses and verifies one frame from the front of buf. Bytes
// beyond the logical frame (HID report padding, the next frame) are ignored;
// consumed reports how many bytes the frame occupied.
//
// Verification order is fixed: header marker first, then declared length
// against the buffer, then the CRC over the covered range. No payload byte
// is interpreted before the CRC matches.
func DecodeFrame(buf []byte) (frame Frame, consumed int, err error) {
	if len(buf) < MarkerLen {
		return Frame{}, 0, &TruncatedError{Need: MarkerLen, Have: len(buf)}
	}
	if buf[0] != Marker0 {
		return Frame{}, 0, &BadHeaderError{Offset: 0, Got: buf[0], Reason: "expected marker 0xFC"}
	}
	if buf[1] != Marker1 {
		return Frame{}, 0, &BadHeaderError{Offset: 1, Got: buf[1], Reason: "expected marker 0x88"}
	}
	if len(buf) < HeaderLen {
		return Frame{}, 0, &TruncatedError{Need: HeaderLen, Have: len(buf)}
	}

	plen := int(binary.BigEndian.Uint16(buf[3:5]))
	if plen > MaxPayloadLen {
		// A length past the compile-time bound can never complete; reject it
		// before any copy rather than waiting for bytes that will not come.
		return Frame{}, 0, &BadHeaderError{Offset: 4, Got: buf[4], Reason: "declared length exceeds maximum payload"}
	}

	total := HeaderLen + plen + ChecksumLen
	if len(buf) < total {
		return Frame{}, 0, &TruncatedError{Need: total, Have: len(buf)}
	}

	covered := buf[:HeaderLen+plen]
	want := Checksum(covered)
	got := binary.BigEndian.Uint16(buf[HeaderLen+plen:])
	if want != got {
		return Frame{}, 0, &ChecksumError{Want: want, Got: got}
	}

	return Frame{
		Opcode:   buf[2],
		Payload:  buf[HeaderLen : HeaderLen+plen],
		Checksum: got,
	}, total, nil
}
