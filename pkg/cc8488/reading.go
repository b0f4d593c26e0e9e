// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cc8488

import "fmt"

// Reading is one decoded, fully verified response from the station. The set
// is closed and mirrors the command set: CurrentReading, HistoryReading and
// ClockAck. A Reading is only ever produced from a frame whose checksum
// matched; partial readings do not exist.
type Reading interface {
	Opcode() byte
}

// Observation is the station's measurement record. All numeric fields are
// raw fixed-point values exactly as carried on the wire; the *Value methods
// convert to physical units.
type Observation struct {
	Time        Timestamp `json:"time" cbor:"0,keyasint"`
	Temperature int16     `json:"temperature_dC" cbor:"1,keyasint"` // tenths of a degree Celsius
	Humidity    uint8     `json:"humidity_pct" cbor:"2,keyasint"`   // percent
	Pressure    uint16    `json:"pressure_dhPa" cbor:"3,keyasint"`  // tenths of hPa
	WindSpeed   uint16    `json:"wind_dms" cbor:"4,keyasint"`       // tenths of m/s
	WindDir     uint16    `json:"wind_dir_deg" cbor:"5,keyasint"`   // degrees, 0-359
	RainTotal   uint32    `json:"rain_dmm" cbor:"6,keyasint"`       // tenths of mm, accumulator
}

// TemperatureC returns the temperature in degrees Celsius.
func (o Observation) TemperatureC() float64 { return float64(o.Temperature) / 10 }

// PressureHPa returns the barometric pressure in hPa.
func (o Observation) PressureHPa() float64 { return float64(o.Pressure) / 10 }

// WindSpeedMS returns the wind speed in m/s.
func (o Observation) WindSpeedMS() float64 { return float64(o.WindSpeed) / 10 }

// RainMM returns the rainfall accumulator in mm.
func (o Observation) RainMM() float64 { return float64(o.RainTotal) / 10 }

// CurrentReading is the response to QueryCurrent.
type CurrentReading struct {
	Observation
}

func (CurrentReading) Opcode() byte { return OpQueryCurrent }

// HistoryReading is the response to QueryHistory: the echoed slot index and
// the archived observation.
type HistoryReading struct {
	Index uint16 `json:"index" cbor:"7,keyasint"`
	Observation
}

func (HistoryReading) Opcode() byte { return OpQueryHistory }

// ClockAck is the response to SetClock.
type ClockAck struct {
	Status byte `json:"status" cbor:"0,keyasint"`
}

func (ClockAck) Opcode() byte { return OpSetClock }

// Accepted reports whether the console accepted the new clock value.
func (a ClockAck) Accepted() bool { return a.Status == ClockAccepted }

// Field descriptor table for the 19-byte observation payload. The timestamp
// occupies bytes 0-5 and is handled by the BCD codec, not a Field.
var observationFields = struct {
	Temperature Field
	Humidity    Field
	Pressure    Field
	WindSpeed   Field
	WindDir     Field
	RainTotal   Field
}{
	Temperature: Field{Name: "temperature", Offset: 6, Width: 2, Scale: 10, Signed: true},
	Humidity:    Field{Name: "humidity", Offset: 8, Width: 1, Scale: 1},
	Pressure:    Field{Name: "pressure", Offset: 9, Width: 2, Scale: 10},
	WindSpeed:   Field{Name: "wind_speed", Offset: 11, Width: 2, Scale: 10},
	WindDir:     Field{Name: "wind_dir", Offset: 13, Width: 2, Scale: 1},
	RainTotal:   Field{Name: "rain_total", Offset: 15, Width: 4, Scale: 10},
}

var historyIndexField = Field{Name: "history_index", Offset: 0, Width: 2, Scale: 1}

func observationTable() []Field {
	f := observationFields
	return []Field{f.Temperature, f.Humidity, f.Pressure, f.WindSpeed, f.WindDir, f.RainTotal}
}

func init() {
	checkDescriptors(observationTable(), observationLen)
	checkDescriptors([]Field{historyIndexField}, historyHeaderLen)
}

// decodeObservation materializes the 19-byte observation payload. Any field
// failure is reported with the failing descriptor's name.
func decodeObservation(payload []byte) (Observation, string, error) {
	var o Observation

	ts, err := DecodeTimestamp(payload, 0)
	if err != nil {
		return o, "timestamp", err
	}
	o.Time = ts

	f := observationFields
	steps := []struct {
		field Field
		store func(int64)
	}{
		{f.Temperature, func(v int64) { o.Temperature = int16(v) }},
		{f.Humidity, func(v int64) { o.Humidity = uint8(v) }},
		{f.Pressure, func(v int64) { o.Pressure = uint16(v) }},
		{f.WindSpeed, func(v int64) { o.WindSpeed = uint16(v) }},
		{f.WindDir, func(v int64) { o.WindDir = uint16(v) }},
		{f.RainTotal, func(v int64) { o.RainTotal = uint32(v) }},
	}
	for _, s := range steps {
		v, err := s.field.Decode(payload)
		if err != nil {
			return Observation{}, s.field.Name, err
		}
		s.store(v)
	}
	return o, "", nil
}

// encodeObservation writes the observation into a 19-byte payload slice.
func encodeObservation(o Observation, payload []byte) (string, error) {
	if err := EncodeTimestamp(o.Time, payload, 0); err != nil {
		return "timestamp", err
	}

	f := observationFields
	steps := []struct {
		field Field
		raw   int64
	}{
		{f.Temperature, int64(o.Temperature)},
		{f.Humidity, int64(o.Humidity)},
		{f.Pressure, int64(o.Pressure)},
		{f.WindSpeed, int64(o.WindSpeed)},
		{f.WindDir, int64(o.WindDir)},
		{f.RainTotal, int64(o.RainTotal)},
	}
	for _, s := range steps {
		if err := s.field.Encode(s.raw, payload); err != nil {
			return s.field.Name, err
		}
	}
	return "", nil
}

// DecodeReading dispatches a verified frame's payload to the field codec and
// produces the typed reading for its opcode. Field failures propagate as
// MalformedPayloadError naming the failing field.
func DecodeReading(f Frame) (Reading, error) {
	switch f.Opcode {
	case OpQueryCurrent:
		if len(f.Payload) != observationLen {
			return nil, &MalformedPayloadError{
				Opcode: f.Opcode, Field: "payload",
				Err: fmt.Errorf("length %d, want %d", len(f.Payload), observationLen),
			}
		}
		o, field, err := decodeObservation(f.Payload)
		if err != nil {
			return nil, &MalformedPayloadError{Opcode: f.Opcode, Field: field, Err: err}
		}
		return CurrentReading{Observation: o}, nil

	case OpQueryHistory:
		if len(f.Payload) != historyHeaderLen+observationLen {
			return nil, &MalformedPayloadError{
				Opcode: f.Opcode, Field: "payload",
				Err: fmt.Errorf("length %d, want %d", len(f.Payload), historyHeaderLen+observationLen),
			}
		}
		idx, err := historyIndexField.Decode(f.Payload)
		if err != nil {
			return nil, &MalformedPayloadError{Opcode: f.Opcode, Field: historyIndexField.Name, Err: err}
		}
		o, field, err := decodeObservation(f.Payload[historyHeaderLen:])
		if err != nil {
			return nil, &MalformedPayloadError{Opcode: f.Opcode, Field: field, Err: err}
		}
		return HistoryReading{Index: uint16(idx), Observation: o}, nil

	case OpSetClock:
		if len(f.Payload) != clockAckLen {
			return nil, &MalformedPayloadError{
				Opcode: f.Opcode, Field: "status",
				Err: fmt.Errorf("length %d, want %d", len(f.Payload), clockAckLen),
			}
		}
		return ClockAck{Status: f.Payload[0]}, nil

	default:
		return nil, &BadHeaderError{Offset: 2, Got: f.Opcode, Reason: "unsupported opcode"}
	}
}

// EncodeReading builds the complete response frame for a reading. It is the
// device-side inverse of DecodeReading, used by tests and simulators.
func EncodeReading(r Reading) ([]byte, error) {
	switch v := r.(type) {
	case CurrentReading:
		var payload [observationLen]byte
		if field, err := encodeObservation(v.Observation, payload[:]); err != nil {
			return nil, &MalformedPayloadError{Opcode: v.Opcode(), Field: field, Err: err}
		}
		return EncodeFrame(OpQueryCurrent, payload[:]), nil

	case HistoryReading:
		var payload [historyHeaderLen + observationLen]byte
		if err := historyIndexField.Encode(int64(v.Index), payload[:]); err != nil {
			return nil, &MalformedPayloadError{Opcode: v.Opcode(), Field: historyIndexField.Name, Err: err}
		}
		if field, err := encodeObservation(v.Observation, payload[historyHeaderLen:]); err != nil {
			return nil, &MalformedPayloadError{Opcode: v.Opcode(), Field: field, Err: err}
		}
		return EncodeFrame(OpQueryHistory, payload[:]), nil

	case ClockAck:
		return EncodeFrame(OpSetClock, []byte{v.Status}), nil

	default:
		return nil, fmt.Errorf("cc8488: unsupported reading type %T", r)
	}
}
