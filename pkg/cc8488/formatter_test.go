// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cc8488

import (
	"strings"
	"testing"
)

func TestOctant(t *testing.T) {
	tests := []struct {
		deg  uint16
		want string
	}{
		{0, "N"},
		{22, "N"},
		{23, "NE"},
		{90, "E"},
		{129, "SE"},
		{180, "S"},
		{270, "W"},
		{337, "NW"},
		{338, "N"},
		{359, "N"},
	}

	for _, tt := range tests {
		if got := Octant(tt.deg); got != tt.want {
			t.Errorf("Octant(%d) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}

func TestFormatReading_Current(t *testing.T) {
	out := FormatReading(CurrentReading{Observation: goldenObservation})
	for _, want := range []string{"CURRENT_READING", "20.4 C", "49 %", "1017.0 hPa", "6.0 m/s", "SE"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatReading_ClockRejected(t *testing.T) {
	out := FormatReading(ClockAck{Status: 0x02})
	if !strings.Contains(out, "rejected") {
		t.Errorf("output missing rejection:\n%s", out)
	}
}

func TestFormatOpcode(t *testing.T) {
	if got := FormatOpcode(OpQueryHistory); got != "HISTORY_READING" {
		t.Errorf("FormatOpcode = %q", got)
	}
	if got := FormatOpcode(0x7F); got != "UNKNOWN" {
		t.Errorf("FormatOpcode(0x7F) = %q", got)
	}
}
