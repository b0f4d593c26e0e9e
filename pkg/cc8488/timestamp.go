// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cc8488

import (
	"fmt"
	"time"
)

// Timestamp is the station's packed calendar time: six BCD bytes
// (year-2000, month, day, hour, minute, second) in the console's local
// timezone. The wire resolution is one second.
type Timestamp struct {
	Year   int // full year, 2000-2099
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// TimestampLen is the encoded size of a Timestamp in bytes.
const TimestampLen = 6

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Validate rejects impossible calendar values. The device never clamps:
// month 13 or day 32 is a protocol violation, not an approximation.
func (ts Timestamp) Validate() error {
	if ts.Year < 2000 || ts.Year > 2099 {
		return &TimestampError{What: "year", Value: ts.Year}
	}
	if ts.Month < 1 || ts.Month > 12 {
		return &TimestampError{What: "month", Value: ts.Month}
	}
	days := daysInMonth[ts.Month]
	if ts.Month == 2 && isLeap(ts.Year) {
		days = 29
	}
	if ts.Day < 1 || ts.Day > days {
		return &TimestampError{What: "day", Value: ts.Day}
	}
	if ts.Hour < 0 || ts.Hour > 23 {
		return &TimestampError{What: "hour", Value: ts.Hour}
	}
	if ts.Minute < 0 || ts.Minute > 59 {
		return &TimestampError{What: "minute", Value: ts.Minute}
	}
	if ts.Second < 0 || ts.Second > 59 {
		return &TimestampError{What: "second", Value: ts.Second}
	}
	return nil
}

// Time converts the timestamp to a time.Time in the given location.
func (ts Timestamp) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(ts.Year, time.Month(ts.Month), ts.Day, ts.Hour, ts.Minute, ts.Second, 0, loc)
}

// TimestampOf packs a time.Time into the wire representation.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second)
}

// DecodeTimestamp parses six BCD bytes starting at offset into a validated
// Timestamp.
func DecodeTimestamp(payload []byte, offset int) (Timestamp, error) {
	if offset+TimestampLen > len(payload) {
		return Timestamp{}, &OutOfRangeError{Field: "timestamp", Need: offset + TimestampLen, Have: len(payload)}
	}

	var vals [TimestampLen]int
	names := [TimestampLen]string{"year", "month", "day", "hour", "minute", "second"}
	for i := 0; i < TimestampLen; i++ {
		b := payload[offset+i]
		hi, lo := int(b>>4), int(b&0x0F)
		if hi > 9 || lo > 9 {
			return Timestamp{}, &TimestampError{What: names[i] + " BCD", Value: int(b)}
		}
		vals[i] = hi*10 + lo
	}

	ts := Timestamp{
		Year:   2000 + vals[0],
		Month:  vals[1],
		Day:    vals[2],
		Hour:   vals[3],
		Minute: vals[4],
		Second: vals[5],
	}
	if err := ts.Validate(); err != nil {
		return Timestamp{}, err
	}
	return ts, nil
}

// EncodeTimestamp writes the timestamp as six BCD bytes starting at offset.
// The exact inverse of DecodeTimestamp; invalid calendar values fail.
func EncodeTimestamp(ts Timestamp, payload []byte, offset int) error {
	if err := ts.Validate(); err != nil {
		return err
	}
	if offset+TimestampLen > len(payload) {
		return &OutOfRangeError{Field: "timestamp", Need: offset + TimestampLen, Have: len(payload)}
	}

	vals := [TimestampLen]int{ts.Year - 2000, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second}
	for i, v := range vals {
		payload[offset+i] = byte(v/10)<<4 | byte(v%10)
	}
	return nil
}
