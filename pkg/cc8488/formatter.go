// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cc8488

import "fmt"

// FormatReading formats a reading into a human-readable multi-line string.
func FormatReading(r Reading) string {
	switch v := r.(type) {
	case CurrentReading:
		return fmt.Sprintf("%s (0x%02X)\n%s", FormatOpcode(v.Opcode()), v.Opcode(), formatObservation(v.Observation))
	case HistoryReading:
		return fmt.Sprintf("%s (0x%02X) slot=%d\n%s", FormatOpcode(v.Opcode()), v.Opcode(), v.Index, formatObservation(v.Observation))
	case ClockAck:
		status := "accepted"
		if !v.Accepted() {
			status = fmt.Sprintf("rejected (0x%02X)", v.Status)
		}
		return fmt.Sprintf("%s (0x%02X)\n  Clock update %s\n", FormatOpcode(v.Opcode()), v.Opcode(), status)
	default:
		return fmt.Sprintf("UNKNOWN reading %T\n", r)
	}
}

// FormatOpcode returns the human-readable name for an opcode
func FormatOpcode(opcode byte) string {
	switch opcode {
	case OpQueryCurrent:
		return "CURRENT_READING"
	case OpQueryHistory:
		return "HISTORY_READING"
	case OpSetClock:
		return "SET_CLOCK"
	default:
		return "UNKNOWN"
	}
}

func formatObservation(o Observation) string {
	result := fmt.Sprintf("  Time:        %s\n", o.Time)
	result += fmt.Sprintf("  Temperature: %.1f C\n", o.TemperatureC())
	result += fmt.Sprintf("  Humidity:    %d %%\n", o.Humidity)
	result += fmt.Sprintf("  Pressure:    %.1f hPa\n", o.PressureHPa())
	result += fmt.Sprintf("  Wind:        %.1f m/s @ %d deg (%s)\n", o.WindSpeedMS(), o.WindDir, Octant(o.WindDir))
	result += fmt.Sprintf("  Rain total:  %.1f mm\n", o.RainMM())
	return result
}

var octants = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Octant maps a wind direction in degrees to its compass octant name.
func Octant(deg uint16) string {
	return octants[((uint32(deg)+22)/45)%8]
}

// FormatFrame renders a raw frame as a one-line hex summary, for diagnostics.
func FormatFrame(f Frame) string {
	result := fmt.Sprintf("%s (0x%02X) len=%d crc=0x%04X:", FormatOpcode(f.Opcode), f.Opcode, len(f.Payload), f.Checksum)
	for _, b := range f.Payload {
		result += fmt.Sprintf(" %02X", b)
	}
	return result + "\n"
}
