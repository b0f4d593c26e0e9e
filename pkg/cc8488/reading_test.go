// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cc8488

import (
	"bytes"
	"errors"
	"testing"
)

var goldenObservation = Observation{
	Time:        Timestamp{Year: 2020, Month: 1, Day: 17, Hour: 17, Minute: 30},
	Temperature: 204,
	Humidity:    49,
	Pressure:    10170,
	WindSpeed:   60,
	WindDir:     129,
	RainTotal:   0,
}

func TestDecodeReading_Current(t *testing.T) {
	frame, _, err := DecodeFrame(goldenCurrentObs)
	if err != nil {
		t.Fatalf("DecodeFrame error: %v", err)
	}

	r, err := DecodeReading(frame)
	if err != nil {
		t.Fatalf("DecodeReading error: %v", err)
	}
	cur, ok := r.(CurrentReading)
	if !ok {
		t.Fatalf("reading type %T, want CurrentReading", r)
	}
	if cur.Observation != goldenObservation {
		t.Errorf("observation %+v, want %+v", cur.Observation, goldenObservation)
	}
	if cur.TemperatureC() != 20.4 {
		t.Errorf("TemperatureC = %v, want 20.4", cur.TemperatureC())
	}
	if cur.PressureHPa() != 1017.0 {
		t.Errorf("PressureHPa = %v, want 1017.0", cur.PressureHPa())
	}
}

func TestDecodeReading_History(t *testing.T) {
	encoded, err := EncodeReading(HistoryReading{Index: 3, Observation: goldenObservation})
	if err != nil {
		t.Fatalf("EncodeReading error: %v", err)
	}

	// Pinned wire image: any codec change that shifts a byte shows up here.
	want := append([]byte{0xFC, 0x88, 0x02, 0x00, 0x15, 0x00, 0x03}, goldenCurrentObs[HeaderLen:HeaderLen+observationLen]...)
	want = append(want, 0x08, 0xFB)
	if !bytes.Equal(encoded, want) {
		t.Fatalf("EncodeReading = % X, want % X", encoded, want)
	}

	frame, _, err := DecodeFrame(encoded)
	if err != nil {
		t.Fatalf("DecodeFrame error: %v", err)
	}
	r, err := DecodeReading(frame)
	if err != nil {
		t.Fatalf("DecodeReading error: %v", err)
	}
	hist, ok := r.(HistoryReading)
	if !ok {
		t.Fatalf("reading type %T, want HistoryReading", r)
	}
	if hist.Index != 3 {
		t.Errorf("index %d, want 3", hist.Index)
	}
	if hist.Observation != goldenObservation {
		t.Errorf("observation %+v, want %+v", hist.Observation, goldenObservation)
	}
}

func TestDecodeReading_ClockAck(t *testing.T) {
	frame, _, err := DecodeFrame(goldenClockAck)
	if err != nil {
		t.Fatalf("DecodeFrame error: %v", err)
	}
	r, err := DecodeReading(frame)
	if err != nil {
		t.Fatalf("DecodeReading error: %v", err)
	}
	ack, ok := r.(ClockAck)
	if !ok {
		t.Fatalf("reading type %T, want ClockAck", r)
	}
	if !ack.Accepted() {
		t.Errorf("status 0x%02X not reported as accepted", ack.Status)
	}
}

// Device-side encode followed by host-side decode is the identity for every
// reading type, including negative temperatures and the rain accumulator.
func TestReading_RoundTrip(t *testing.T) {
	cold := goldenObservation
	cold.Temperature = -275 // -27.5 C
	cold.RainTotal = 123456 // 12345.6 mm

	readings := []Reading{
		CurrentReading{Observation: goldenObservation},
		CurrentReading{Observation: cold},
		HistoryReading{Index: 0, Observation: goldenObservation},
		HistoryReading{Index: HistorySlots - 1, Observation: cold},
		ClockAck{Status: 0x01},
	}

	for _, r := range readings {
		encoded, err := EncodeReading(r)
		if err != nil {
			t.Fatalf("EncodeReading(%T) error: %v", r, err)
		}
		frame, _, err := DecodeFrame(encoded)
		if err != nil {
			t.Fatalf("DecodeFrame(%T) error: %v", r, err)
		}
		got, err := DecodeReading(frame)
		if err != nil {
			t.Fatalf("DecodeReading(%T) error: %v", r, err)
		}
		if got != r {
			t.Errorf("round trip %+v -> %+v", r, got)
		}
	}
}

func TestDecodeReading_WrongPayloadLength(t *testing.T) {
	tests := []struct {
		name   string
		opcode byte
		length int
	}{
		{"current short", OpQueryCurrent, observationLen - 1},
		{"current long", OpQueryCurrent, observationLen + 1},
		{"current empty", OpQueryCurrent, 0},
		{"history short", OpQueryHistory, historyHeaderLen + observationLen - 1},
		{"clock ack long", OpSetClock, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := Frame{Opcode: tt.opcode, Payload: make([]byte, tt.length)}
			_, err := DecodeReading(frame)
			var malformed *MalformedPayloadError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedPayloadError, got %v", err)
			}
			if malformed.Opcode != tt.opcode {
				t.Errorf("error names opcode 0x%02X, want 0x%02X", malformed.Opcode, tt.opcode)
			}
		})
	}
}

// A correct-length observation with a garbage timestamp is malformed, and
// the error names the offending field.
func TestDecodeReading_BadTimestampField(t *testing.T) {
	payload := make([]byte, observationLen)
	copy(payload, goldenCurrentObs[HeaderLen:])
	payload[1] = 0x13 // month 13

	_, err := DecodeReading(Frame{Opcode: OpQueryCurrent, Payload: payload})
	var malformed *MalformedPayloadError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedPayloadError, got %v", err)
	}
	if malformed.Field != "timestamp" {
		t.Errorf("error names field %q, want \"timestamp\"", malformed.Field)
	}
	var terr *TimestampError
	if !errors.As(err, &terr) {
		t.Errorf("cause should unwrap to TimestampError, got %v", malformed.Err)
	}
}

func TestDecodeReading_UnknownOpcode(t *testing.T) {
	_, err := DecodeReading(Frame{Opcode: 0x7F})
	var bad *BadHeaderError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadHeaderError, got %v", err)
	}
}

func TestEncodeReading_InvalidTimestampRejected(t *testing.T) {
	o := goldenObservation
	o.Time.Month = 0
	_, err := EncodeReading(CurrentReading{Observation: o})
	var malformed *MalformedPayloadError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedPayloadError, got %v", err)
	}
	if malformed.Field != "timestamp" {
		t.Errorf("error names field %q, want \"timestamp\"", malformed.Field)
	}
}
