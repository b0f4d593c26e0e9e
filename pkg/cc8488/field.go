// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cc8488

import "encoding/binary"

// Field describes one fixed-width numeric field inside a frame payload.
//
// Decoded values are raw fixed-point integers; Scale is the divisor that maps
// the raw value to physical units (e.g. Scale 10 means tenths). The mapping
// is exact: encoding a decoded value reproduces the original bytes.
type Field struct {
	Name   string
	Offset int
	Width  int // 1, 2 or 4 bytes
	Scale  int // divisor to physical units, 1 for unscaled
	Signed bool
	Order  binary.ByteOrder // nil means big-endian (the device default)
}

func (f Field) order() binary.ByteOrder {
	if f.Order != nil {
		return f.Order
	}
	return binary.BigEndian
}

// Decode extracts the raw fixed-point integer from payload.
// Returns OutOfRangeError if the payload is shorter than Offset+Width.
func (f Field) Decode(payload []byte) (int64, error) {
	end := f.Offset + f.Width
	if end > len(payload) {
		return 0, &OutOfRangeError{Field: f.Name, Need: end, Have: len(payload)}
	}

	b := payload[f.Offset:end]
	var u uint64
	switch f.Width {
	case 1:
		u = uint64(b[0])
	case 2:
		u = uint64(f.order().Uint16(b))
	case 4:
		u = uint64(f.order().Uint32(b))
	default:
		// Field tables are validated at init; see checkDescriptors.
		panic("cc8488: unsupported field width")
	}

	if !f.Signed {
		return int64(u), nil
	}

	// Sign-extend from the field width.
	shift := uint(64 - f.Width*8)
	return int64(u<<shift) >> shift, nil
}

// Encode writes the raw fixed-point integer into payload, the exact inverse
// of Decode. Returns ValueOverflowError if the value does not fit the field's
// width and signedness, OutOfRangeError if the payload is too short.
func (f Field) Encode(raw int64, payload []byte) error {
	end := f.Offset + f.Width
	if end > len(payload) {
		return &OutOfRangeError{Field: f.Name, Need: end, Have: len(payload)}
	}

	bits := uint(f.Width * 8)
	if f.Signed {
		min := int64(-1) << (bits - 1)
		max := int64(1)<<(bits-1) - 1
		if raw < min || raw > max {
			return &ValueOverflowError{Field: f.Name, Value: raw}
		}
	} else {
		if raw < 0 || (f.Width < 8 && raw > int64(1)<<bits-1) {
			return &ValueOverflowError{Field: f.Name, Value: raw}
		}
	}

	b := payload[f.Offset:end]
	switch f.Width {
	case 1:
		b[0] = byte(raw)
	case 2:
		f.order().PutUint16(b, uint16(raw))
	case 4:
		f.order().PutUint32(b, uint32(raw))
	default:
		panic("cc8488: unsupported field width")
	}
	return nil
}

// Physical converts a raw fixed-point value to physical units.
func (f Field) Physical(raw int64) float64 {
	if f.Scale <= 1 {
		return float64(raw)
	}
	return float64(raw) / float64(f.Scale)
}

// checkDescriptors panics if any descriptor in the table falls outside the
// payload of the given length. A bad table is a programming error, caught at
// package init rather than on device traffic.
func checkDescriptors(table []Field, payloadLen int) {
	for _, f := range table {
		if f.Offset < 0 || f.Width == 0 || f.Offset+f.Width > payloadLen {
			panic("cc8488: field descriptor " + f.Name + " outside payload bounds")
		}
		switch f.Width {
		case 1, 2, 4:
		default:
			panic("cc8488: field descriptor " + f.Name + " has unsupported width")
		}
	}
}
