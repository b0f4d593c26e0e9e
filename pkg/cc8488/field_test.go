// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cc8488

import (
	"encoding/binary"
	"errors"
	"testing"
)

// ============================================================
// Field Decode/Encode Tests
// ============================================================

func TestField_DecodeKnownValues(t *testing.T) {
	payload := []byte{
		0x20, 0x01, 0x17, 0x17, 0x30, 0x00, // timestamp (BCD, not a Field)
		0xFF, 0xF4, // temperature -1.2 C
		0x31,       // humidity 49
		0x27, 0xBA, // pressure 1017.0
		0x00, 0x3C, // wind 6.0
		0x00, 0x81, // dir 129
		0x00, 0x00, 0x01, 0x2C, // rain 30.0
	}

	tests := []struct {
		field Field
		want  int64
	}{
		{observationFields.Temperature, -12},
		{observationFields.Humidity, 49},
		{observationFields.Pressure, 10170},
		{observationFields.WindSpeed, 60},
		{observationFields.WindDir, 129},
		{observationFields.RainTotal, 300},
	}

	for _, tt := range tests {
		t.Run(tt.field.Name, func(t *testing.T) {
			got, err := tt.field.Decode(payload)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode = %d, want %d", got, tt.want)
			}
		})
	}
}

// Every descriptor must round-trip decode(encode(v)) == v across its range.
func TestField_RoundTrip(t *testing.T) {
	for _, f := range observationTable() {
		bits := uint(f.Width * 8)
		var values []int64
		if f.Signed {
			min := int64(-1) << (bits - 1)
			max := int64(1)<<(bits-1) - 1
			values = []int64{min, min + 1, -1, 0, 1, max - 1, max}
		} else {
			max := int64(1)<<bits - 1
			values = []int64{0, 1, max / 2, max - 1, max}
		}

		for _, v := range values {
			payload := make([]byte, observationLen)
			if err := f.Encode(v, payload); err != nil {
				t.Fatalf("%s: Encode(%d) error: %v", f.Name, v, err)
			}
			got, err := f.Decode(payload)
			if err != nil {
				t.Fatalf("%s: Decode error: %v", f.Name, err)
			}
			if got != v {
				t.Errorf("%s: round trip %d -> %d", f.Name, v, got)
			}
		}
	}
}

func TestField_EncodeOverflow(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value int64
	}{
		{"temperature above i16", observationFields.Temperature, 32768},
		{"temperature below i16", observationFields.Temperature, -32769},
		{"humidity above u8", observationFields.Humidity, 256},
		{"humidity negative", observationFields.Humidity, -1},
		{"pressure above u16", observationFields.Pressure, 65536},
		{"wind dir negative", observationFields.WindDir, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := make([]byte, observationLen)
			err := tt.field.Encode(tt.value, payload)
			var overflow *ValueOverflowError
			if !errors.As(err, &overflow) {
				t.Fatalf("expected ValueOverflowError, got %v", err)
			}
			if overflow.Field != tt.field.Name {
				t.Errorf("error names field %q, want %q", overflow.Field, tt.field.Name)
			}
		})
	}
}

func TestField_DecodeShortSlice(t *testing.T) {
	for _, f := range observationTable() {
		// Every length from empty up to one byte short of the field.
		for n := 0; n < f.Offset+f.Width; n++ {
			_, err := f.Decode(make([]byte, n))
			var oor *OutOfRangeError
			if !errors.As(err, &oor) {
				t.Fatalf("%s: len %d: expected OutOfRangeError, got %v", f.Name, n, err)
			}
		}
	}
}

func TestField_LittleEndianOrder(t *testing.T) {
	f := Field{Name: "le", Offset: 0, Width: 2, Order: binary.LittleEndian}
	payload := []byte{0x34, 0x12}
	got, err := f.Decode(payload)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got != 0x1234 {
		t.Errorf("Decode = 0x%04X, want 0x1234", got)
	}
}

func TestCheckDescriptors_OutOfBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-bounds descriptor")
		}
	}()
	checkDescriptors([]Field{{Name: "bad", Offset: 18, Width: 4}}, observationLen)
}
